package cube

import (
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Document builds a glTF document holding the cube as one triangle mesh
// with POSITION and COLOR_0 attributes.
func Document() *gltf.Document {
	doc := gltf.NewDocument()
	pos := Positions()
	col := Colors()

	posAcc := modeler.WritePosition(doc, pos[:])
	colAcc := modeler.WriteColor(doc, col[:])
	idxAcc := modeler.WriteIndices(doc, TriangleIndices())

	doc.Meshes = []*gltf.Mesh{{
		Name: "cube",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(idxAcc),
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION: posAcc,
				gltf.COLOR_0:  colAcc,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "cube", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// WriteGLB encodes the cube as binary glTF.
func WriteGLB(w io.Writer) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(Document()); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes the cube to path as binary glTF.
func SaveGLB(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGLB(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
