package landmark

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Image is a single input frame with known pixel dimensions.  The underlying
// Mat is read only to the detection task.
type Image struct {
	mat gocv.Mat
}

// NewImage wraps an existing gocv Mat as an input frame
func NewImage(mat gocv.Mat) (*Image, error) {

	if mat.Empty() {
		return nil, fmt.Errorf("image Mat is empty")
	}

	return &Image{mat: mat}, nil
}

// LoadImage reads an image from the given file
func LoadImage(file string) (*Image, error) {

	mat := gocv.IMRead(file, gocv.IMReadColor)

	if mat.Empty() {
		return nil, fmt.Errorf("error reading image from: %s", file)
	}

	return &Image{mat: mat}, nil
}

// Width returns the image width in pixels
func (i *Image) Width() int {
	return i.mat.Cols()
}

// Height returns the image height in pixels
func (i *Image) Height() int {
	return i.mat.Rows()
}

// Mat returns the underlying gocv Mat
func (i *Image) Mat() gocv.Mat {
	return i.mat
}

// EncodeJPEG encodes the frame as JPEG bytes for transmission to the remote
// service
func (i *Image) EncodeJPEG() ([]byte, error) {

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, i.mat)

	if err != nil {
		return nil, fmt.Errorf("error encoding image to JPEG: %w", err)
	}

	defer buf.Close()

	// copy out of the native buffer before it is released
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())

	return data, nil
}

// Close releases the underlying Mat
func (i *Image) Close() error {
	return i.mat.Close()
}
