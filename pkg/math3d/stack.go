package math3d

import "errors"

// ErrStackUnderflow is returned when popping the last matrix of a stack.
var ErrStackUnderflow = errors.New("matrix stack underflow")

// MatrixStack is a save/restore stack of transforms. It always holds at
// least one matrix, the current one.
type MatrixStack struct {
	saved []Mat4
	top   Mat4
}

// NewMatrixStack returns a stack whose current matrix is the identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{top: Identity()}
}

// Top returns the current matrix.
func (s *MatrixStack) Top() Mat4 {
	return s.top
}

// Load replaces the current matrix.
func (s *MatrixStack) Load(m Mat4) {
	s.top = m
}

// LoadIdentity resets the current matrix.
func (s *MatrixStack) LoadIdentity() {
	s.top = Identity()
}

// Mul post-multiplies the current matrix by m, so m applies to vertices
// before everything already on the stack.
func (s *MatrixStack) Mul(m Mat4) {
	s.top = s.top.Mul(m)
}

// Push saves a copy of the current matrix.
func (s *MatrixStack) Push() {
	s.saved = append(s.saved, s.top)
}

// Pop restores the most recently pushed matrix.
func (s *MatrixStack) Pop() error {
	if len(s.saved) == 0 {
		return ErrStackUnderflow
	}
	s.top = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return nil
}

// Depth returns the number of saved matrices.
func (s *MatrixStack) Depth() int {
	return len(s.saved)
}
