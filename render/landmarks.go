package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"github.com/ikomia-hub/go-vision-landmark/postprocess"
)

// boxLabel defines where a detection label should be rendered on the source
// image
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// Landmarks renders the bounding polygon and label of each detected
// landmark on the image
func Landmarks(img *gocv.Mat, results []postprocess.LandmarkResult,
	font Font, lineThickness int) {

	// keep a record of all labels for later rendering
	boxLabels := make([]boxLabel, 0)

	for i, result := range results {

		if len(result.Polygon) == 0 {
			continue
		}

		// Get the color for this landmark
		colorIndex := i % len(landmarkColors)
		useClr := landmarkColors[colorIndex]

		// rasterize polygon vertices to whole pixels
		pts := make([]image.Point, 0, len(result.Polygon))

		for _, pt := range result.Polygon {
			pts = append(pts, image.Pt(round(pt.X), round(pt.Y)))
		}

		pv := gocv.NewPointVectorFromPoints(pts)
		ptsVec := gocv.NewPointsVector()
		ptsVec.Append(pv)

		// draw polygon outline
		gocv.Polylines(img, ptsVec, true, useClr, lineThickness)

		pv.Close()
		ptsVec.Close()

		// anchor the label above the topmost vertex, centered on the polygon
		topY := pts[0].Y
		sumX := 0

		for _, pt := range pts {
			if pt.Y < topY {
				topY = pt.Y
			}
			sumX += pt.X
		}

		centerX := sumX / len(pts)

		// create text for label
		text := fmt.Sprintf("%s %.2f", result.Label, result.Confidence)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		// Adjust the label position so the text is centered horizontally
		labelPosition := image.Pt(centerX-textSize.X/2, topY-font.BottomPad)

		// create box for placing text on
		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			topY-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, topY)

		// record label rendering details
		nextLabel := boxLabel{
			rect:    bRect,
			clr:     useClr,
			text:    text,
			textPos: labelPosition,
		}
		boxLabels = append(boxLabels, nextLabel)
	}

	// draw all precalculated labels so they are the top most layer on the
	// image and don't get overlapped with polygon lines
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// round converts a float32 coordinate to its nearest whole pixel
func round(v float32) int {
	return int(math.Round(float64(v)))
}
