package xnb

// Readers for the XNA framework's own value types. Leaf decoders also use
// the cursor helpers below for inline (non-polymorphic) fields.

const readerNamespace = "Microsoft.Xna.Framework.Content."

type Vector2 struct{ X, Y float32 }

type Vector3 struct{ X, Y, Z float32 }

type Quaternion struct{ X, Y, Z, W float32 }

// Matrix is a 4x4 matrix in row-major order (M11, M12, ... M44).
type Matrix [16]float32

// ExternalReference names content stored in another file, relative to the
// content root.
type ExternalReference struct {
	Path string
}

var (
	StringReader            = NewTypeReader(readerNamespace+"StringReader", 0, (*Cursor).ReadString)
	BooleanReader           = NewTypeReader(readerNamespace+"BooleanReader", 0, (*Cursor).ReadBool)
	Int32Reader             = NewTypeReader(readerNamespace+"Int32Reader", 0, (*Cursor).ReadInt32)
	SingleReader            = NewTypeReader(readerNamespace+"SingleReader", 0, (*Cursor).ReadFloat32)
	Vector2Reader           = NewTypeReader(readerNamespace+"Vector2Reader", 0, (*Cursor).ReadVector2)
	Vector3Reader           = NewTypeReader(readerNamespace+"Vector3Reader", 0, (*Cursor).ReadVector3)
	QuaternionReader        = NewTypeReader(readerNamespace+"QuaternionReader", 0, (*Cursor).ReadQuaternion)
	MatrixReader            = NewTypeReader(readerNamespace+"MatrixReader", 0, (*Cursor).ReadMatrix)
	ExternalReferenceReader = NewTypeReader(readerNamespace+"ExternalReferenceReader", 0, ReadExternalReference)
)

// BuiltinReaders returns the readers DefaultRegistry is built from.
func BuiltinReaders() []AnyReader {
	return []AnyReader{
		StringReader,
		BooleanReader,
		Int32Reader,
		SingleReader,
		Vector2Reader,
		Vector3Reader,
		QuaternionReader,
		MatrixReader,
		ExternalReferenceReader,
	}
}

func (c *Cursor) readFloats(dst []float32) error {
	for i := range dst {
		v, err := c.ReadFloat32()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (c *Cursor) ReadVector2() (Vector2, error) {
	var f [2]float32
	err := c.readFloats(f[:])
	return Vector2{f[0], f[1]}, err
}

func (c *Cursor) ReadVector3() (Vector3, error) {
	var f [3]float32
	err := c.readFloats(f[:])
	return Vector3{f[0], f[1], f[2]}, err
}

func (c *Cursor) ReadQuaternion() (Quaternion, error) {
	var f [4]float32
	err := c.readFloats(f[:])
	return Quaternion{f[0], f[1], f[2], f[3]}, err
}

func (c *Cursor) ReadMatrix() (Matrix, error) {
	var m Matrix
	err := c.readFloats(m[:])
	return m, err
}

func ReadExternalReference(c *Cursor) (ExternalReference, error) {
	p, err := c.ReadString()
	return ExternalReference{Path: p}, err
}
