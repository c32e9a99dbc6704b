package pipeline

// FrameSource supplies the live image to be warped. Frame returns the
// latest RGBA frame; ok is false when no frame is available yet, in
// which case the previous texture content is drawn again.
type FrameSource interface {
	Frame() (width, height int, pixels []byte, ok bool)
}
