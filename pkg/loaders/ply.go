package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name     string
	Type     string // Scalar type, or the item type of a list
	IsList   bool
	ListType string // Type of the list length prefix
}

// plyElement is an element block (vertex, face, ...) and its properties in file order
type plyElement struct {
	Name       string
	Count      int
	Properties []plyProperty
}

// plyHeader represents the parsed header information from a PLY file
type plyHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Elements []plyElement
}

// LoadPLY loads vertex positions and faces from a PLY file.
// Polygons with more than three vertices are split into triangle fans.
func LoadPLY(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	mesh.Name = filepath.Base(filename)
	return mesh, nil
}

// ReadPLY decodes a PLY stream in any of the three standard encodings
func ReadPLY(r io.Reader) (*Mesh, error) {
	reader := bufio.NewReader(r)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var read plyValueReader
	switch header.Format {
	case "ascii":
		read = &asciiPLYReader{reader: reader}
	case "binary_little_endian":
		read = &binaryPLYReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		read = &binaryPLYReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	mesh := &Mesh{}
	for _, element := range header.Elements {
		if err := readPLYElement(read, element, mesh); err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}
	if err := mesh.validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// parsePLYHeader parses header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		parts := strings.Fields(line)
		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("invalid format line")
			}
			header.Format = parts[1]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line")
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("invalid list property definition")
		}
		return plyProperty{Name: parts[3], Type: parts[2], IsList: true, ListType: parts[1]}, nil
	}
	return plyProperty{Name: parts[1], Type: parts[0]}, nil
}

// readPLYElement reads every record of an element, keeping positions and face indices
func readPLYElement(read plyValueReader, element plyElement, mesh *Mesh) error {
	for n := 0; n < element.Count; n++ {
		var x, y, z float64
		var polygon []int

		for _, prop := range element.Properties {
			if prop.IsList {
				length, err := read.value(prop.ListType)
				if err != nil {
					return err
				}
				if length < 0 {
					return fmt.Errorf("negative list length %v", length)
				}
				items := make([]int, int(length))
				for i := range items {
					v, err := read.value(prop.Type)
					if err != nil {
						return err
					}
					items[i] = int(v)
				}
				if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
					polygon = items
				}
				continue
			}

			v, err := read.value(prop.Type)
			if err != nil {
				return err
			}
			if element.Name == "vertex" {
				switch prop.Name {
				case "x":
					x = v
				case "y":
					y = v
				case "z":
					z = v
				}
			}
		}

		switch element.Name {
		case "vertex":
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(x, y, z))
		case "face":
			for i := 1; i+1 < len(polygon); i++ {
				mesh.Faces = append(mesh.Faces, polygon[0], polygon[i], polygon[i+1])
			}
		}
		if err := read.endRecord(); err != nil {
			return err
		}
	}
	return nil
}

// plyValueReader reads one scalar of a named PLY type
type plyValueReader interface {
	value(dataType string) (float64, error)
	endRecord() error
}

// asciiPLYReader reads whitespace separated values; records end at newlines
type asciiPLYReader struct {
	reader *bufio.Reader
	fields []string
}

func (a *asciiPLYReader) value(dataType string) (float64, error) {
	for len(a.fields) == 0 {
		line, err := a.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, fmt.Errorf("unexpected end of data: %w", err)
		}
		a.fields = strings.Fields(line)
	}
	field := a.fields[0]
	a.fields = a.fields[1:]
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, field)
	}
	return v, nil
}

func (a *asciiPLYReader) endRecord() error {
	a.fields = nil
	return nil
}

// binaryPLYReader decodes fixed-width values in the file's byte order
type binaryPLYReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryPLYReader) value(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unknown PLY type %q", dataType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.reader, data); err != nil {
		return 0, fmt.Errorf("unexpected end of data: %w", err)
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}

func (b *binaryPLYReader) endRecord() error { return nil }

// getTypeSize returns the size in bytes of a PLY data type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
