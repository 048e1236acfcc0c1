package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        string                 `json:"color"` // Shaded pixel color as #rrggbb
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a color with the same truncation as the framebuffer
func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", uint8(255*c.X), uint8(255*c.Y), uint8(255*c.Z))
}

// extractMaterialInfo lists the shading coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"ambient":      vecArray(mat.Ambient),
		"diffuse":      vecArray(mat.Diffuse),
		"specular":     vecArray(mat.Specular),
		"shininess":    mat.Shininess,
		"reflectivity": mat.Reflectivity,
		"color":        hexColor(mat.Diffuse),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(geom.V0), vecArray(geom.V1), vecArray(geom.V2)}
		properties["normal"] = vecArray(geom.Normal())
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// handleInspect reports the object seen through a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	query := r.URL.Query()
	if query.Get("x") == "" || query.Get("y") == "" {
		writeJSONError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	pixelX, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelY, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rt := renderer.NewRaytracer(sceneObj, s.renderConfig(req).Shading)
	info := rt.InspectPixel(pixelX, pixelY)

	response := InspectResponse{
		Hit:         info.Hit,
		ObjectIndex: info.ObjectIndex,
		Color:       hexColor(info.Color),
	}
	if info.Hit {
		geometryType, geometryProps := extractGeometryInfo(info.Object.Shape)
		response.GeometryType = geometryType
		response.Point = vecArray(info.Record.Point)
		response.Normal = vecArray(info.Record.Normal)
		response.Distance = info.Record.T
		response.Properties = map[string]interface{}{
			"geometry": geometryProps,
			"material": extractMaterialInfo(info.Object.Material),
		}
	}

	writeJSON(w, http.StatusOK, response)
}
