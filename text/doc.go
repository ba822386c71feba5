// Package text draws single-line labels for text compositing.
//
// A FontSource is a parsed font file shared across the application; a Face
// is that font at one size. Text is shaped with go-text/typesetting's
// HarfBuzz port and the resulting clusters are rasterized with
// golang.org/x/image/font, using the font's outlines at 72 DPI.
//
// # Example usage
//
//	src, err := text.DefaultSource()
//	if err != nil {
//	    return err
//	}
//	face, err := src.Face(24)
//	if err != nil {
//	    return err
//	}
//	defer face.Close()
//
//	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
//	face.Draw(img, 10, 10, "Hello", color.Black)
package text
