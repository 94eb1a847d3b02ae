/*
Example code showing how to run Google Cloud Vision landmark detection on an
image file and save the rendered overlay.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	landmark "github.com/ikomia-hub/go-vision-landmark"
)

func main() {

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	// read in cli flags
	imgFile := flag.String("i", "../data/landmark.jpg", "Image file to run detection on")
	saveFile := flag.String("o", "../data/landmark-out.jpg", "The output JPG file with landmark polygons rendered")
	credsFile := flag.String("c", "", "Google service account key file, defaults to GOOGLE_APPLICATION_CREDENTIALS")
	confThres := flag.Float64("t", landmark.DefaultConfThreshold, "Confidence threshold in range [0,1]")
	maxResults := flag.Int("n", landmark.DefaultMaxResults, "Maximum number of landmarks requested")

	flag.Parse()

	params := landmark.Params{
		ConfThreshold:   float32(*confThres),
		CredentialsFile: *credsFile,
		MaxResults:      *maxResults,
	}

	task, err := landmark.NewTask(params)

	if err != nil {
		log.Fatal().Err(err).Msg("invalid task parameters")
	}

	defer task.Close()

	// load image
	img, err := landmark.LoadImage(*imgFile)

	if err != nil {
		log.Fatal().Err(err).Str("file", *imgFile).Msg("error reading image")
	}

	defer img.Close()

	result, err := task.Run(context.Background(), img)

	if err != nil {
		log.Fatal().Err(err).Msg("detection run failed")
	}

	defer result.Overlay.Close()

	if len(result.Detections) == 0 {
		log.Info().Msg("no landmark detected")
	}

	// output detections to stdout
	for _, det := range result.Detections {
		fmt.Printf("%s @ (%d %d %d %d) %f\n", det.Label,
			det.Box.Left, det.Box.Top, det.Box.Right, det.Box.Bottom,
			det.Confidence)

		for _, loc := range det.Locations {
			fmt.Printf("  location: latitude=%f, longitude=%f\n",
				loc.Latitude, loc.Longitude)
		}
	}

	data, err := result.JSON()

	if err != nil {
		log.Fatal().Err(err).Msg("error exporting detections to JSON")
	}

	fmt.Println(string(data))

	// Save the result
	if ok := gocv.IMWrite(*saveFile, result.Overlay); !ok {
		log.Fatal().Str("file", *saveFile).Msg("failed to save the overlay image")
	}

	log.Info().Str("file", *saveFile).Msg("saved landmark detection overlay")
}
