/*
go-vision-landmark wraps the Google Cloud Vision landmark detection API as a
single workflow algorithm.  It takes one image, issues a landmark annotation
request with caller supplied service account credentials, maps the normalized
polygon response back to pixel space filtered by a confidence threshold, and
produces both structured detections and a rendered overlay.

Landmark detection recognises popular natural and human-made structures such
as bridges, towers and monuments.  See
https://cloud.google.com/vision/docs/detecting-landmarks for the service
documentation.

See example code and usage in the example subdirectory.
*/
package landmark
