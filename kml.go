package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	kml "github.com/twpayne/go-kml/v3"
)

// ParseBoundaryKML extracts the survey boundary from a KML document. It
// prefers the first coordinates element inside a Polygon's outer boundary and
// falls back to the first coordinates element anywhere, which is how loosely
// structured exports from mapping tools tend to arrive. Coordinate tuples are
// "lon,lat[,alt]"; altitude is ignored.
func ParseBoundaryKML(r io.Reader) (orb.Ring, error) {
	dec := xml.NewDecoder(r)

	inPolygon := 0
	inInner := 0
	var polyCoords, anyCoords string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed KML: %v", ErrInvalidPolygon, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Polygon":
				inPolygon++
			case "innerBoundaryIs":
				inInner++
			case "coordinates":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, fmt.Errorf("%w: malformed coordinates: %v", ErrInvalidPolygon, err)
				}
				if inPolygon > 0 && inInner == 0 && polyCoords == "" {
					polyCoords = text
				}
				if anyCoords == "" {
					anyCoords = text
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "Polygon":
				inPolygon--
			case "innerBoundaryIs":
				inInner--
			}
		}
	}

	coords := polyCoords
	if coords == "" {
		coords = anyCoords
	}
	if coords == "" {
		return nil, fmt.Errorf("%w: no coordinates found in KML", ErrInvalidPolygon)
	}

	ring, err := parseCoordinateTuples(coords)
	if err != nil {
		return nil, err
	}
	if err := validateBoundary(ring); err != nil {
		return nil, err
	}
	return ring, nil
}

func parseCoordinateTuples(text string) (orb.Ring, error) {
	var ring orb.Ring

	for _, tuple := range strings.Fields(text) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: bad coordinate tuple %q", ErrInvalidPolygon, tuple)
		}
		ring = append(ring, orb.Point{lon, lat})
	}

	// KML rings repeat the first vertex; we store rings open.
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring, nil
}

// LoadBoundaryKML reads the survey boundary from a KML file.
func LoadBoundaryKML(path string) (orb.Ring, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open KML file: %w", err)
	}
	defer f.Close()

	ring, err := ParseBoundaryKML(f)
	if err != nil {
		return nil, err
	}

	log.Printf("   Parsed %d boundary points from %s\n", len(ring), path)
	return ring, nil
}

// WritePreviewKML writes a KML document with the survey boundary, the padded
// polygon, the planned flight path, and the home position, for eyeballing the
// plan in Google Earth before flying it.
func WritePreviewKML(w io.Writer, plan *FlightPlan, home *orb.Point) error {
	elements := []kml.Element{
		kml.Name("Survey flight plan"),
		kml.Placemark(
			kml.Name("Survey boundary"),
			kml.Polygon(
				kml.OuterBoundaryIs(
					kml.LinearRing(
						kml.Coordinates(ringCoordinates(plan.Boundary)...),
					),
				),
			),
		),
		kml.Placemark(
			kml.Name("Padded boundary"),
			kml.LineString(
				kml.Coordinates(ringCoordinates(plan.Padded)...),
			),
		),
		kml.Placemark(
			kml.Name("Flight path"),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(pathCoordinates(plan.Sequence.Waypoints)...),
			),
		),
	}

	if home != nil {
		elements = append(elements, kml.Placemark(
			kml.Name("Home"),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: home.Lon(), Lat: home.Lat()}),
			),
		))
	}

	doc := kml.KML(kml.Document(elements...))
	return doc.WriteIndent(w, "", "  ")
}

// SavePreviewKML writes the preview document to a file.
func SavePreviewKML(plan *FlightPlan, home *orb.Point, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer f.Close()

	if err := WritePreviewKML(f, plan, home); err != nil {
		return err
	}
	log.Printf("   ✅ Preview KML written to %s\n", filename)
	return nil
}

func ringCoordinates(r orb.Ring) []kml.Coordinate {
	closed := closedRing(r)
	coords := make([]kml.Coordinate, len(closed))
	for i, p := range closed {
		coords[i] = kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
	}
	return coords
}

func pathCoordinates(points []orb.Point) []kml.Coordinate {
	coords := make([]kml.Coordinate, len(points))
	for i, p := range points {
		coords[i] = kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
	}
	return coords
}
