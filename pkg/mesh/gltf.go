package mesh

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/rasterctl/pkg/vecmath"
)

// LoadGLB reads a binary glTF (.glb) file and returns a Mesh. This is a
// supplementary input format alongside LoadOBJ; the renderer never
// distinguishes a mesh's origin once loaded.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open gltf %s: %w", path, err)
	}

	var vertices []Vertex
	var faces []Face
	for _, m := range doc.Meshes {
		v, f, err := processGLTFMesh(doc, m, len(vertices))
		if err != nil {
			return nil, fmt.Errorf("mesh: process gltf mesh %q: %w", m.Name, err)
		}
		vertices = append(vertices, v...)
		faces = append(faces, f...)
	}

	built, err := New(filepath.Base(path), vertices, faces)
	if err != nil {
		return nil, err
	}
	return built, nil
}

// processGLTFMesh extracts geometry from a single glTF mesh, offsetting its
// face indices by baseVertex so it can be appended to a larger vertex list.
func processGLTFMesh(doc *gltf.Document, m *gltf.Mesh, baseVertex int) ([]Vertex, []Face, error) {
	var vertices []Vertex
	var faces []Face

	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue // lines, points, fans etc. are outside the triangle-only contract
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, nil, fmt.Errorf("read positions: %w", err)
		}

		var normals []vecmath.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return nil, nil, fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs []vecmath.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return nil, nil, fmt.Errorf("read uvs: %w", err)
			}
		}

		primBase := len(vertices)
		for i := range positions {
			v := Vertex{Position: positions[i]}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				// glTF's origin is top-left (V=0 at top); flip to bottom-left.
				v.UV = vecmath.V2(uvs[i].X, 1.0-uvs[i].Y)
			}
			vertices = append(vertices, v)
		}

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, nil, fmt.Errorf("read indices: %w", err)
			}
			// glTF uses CCW winding for front faces, the same convention as
			// OBJ input and as the renderer's view-space back-face test, so
			// indices are kept in file order.
			for i := 0; i+2 < len(indices); i += 3 {
				faces = append(faces, Face{V: [3]int{
					baseVertex + primBase + indices[i],
					baseVertex + primBase + indices[i+1],
					baseVertex + primBase + indices[i+2],
				}})
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				faces = append(faces, Face{V: [3]int{
					baseVertex + primBase + i,
					baseVertex + primBase + i + 1,
					baseVertex + primBase + i + 2,
				}})
			}
		}
	}

	return vertices, faces, nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]vecmath.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}
	result := make([]vecmath.Vec3, len(floats))
	for i, f := range floats {
		result[i] = vecmath.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]vecmath.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}
	result := make([]vecmath.Vec2, len(floats))
	for i, f := range floats {
		result[i] = vecmath.V2(float64(f[0]), float64(f[1]))
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

// readAccessorData reads raw data from a glTF accessor. External (non-GLB)
// buffers are not supported; every caller in this package only ever loads
// .glb files, whose buffers are embedded.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorVec2:
		if stride == 0 {
			stride = 8
		}
		result := make([][2]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 2 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return float32frombits(bits)
}

func float32frombits(b uint32) float32 {
	return *(*float32)(unsafe.Pointer(&b))
}
