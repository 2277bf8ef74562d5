// Package imaging connects decoded image files to the plate detection core.
//
// The detector in package plate works on raw channel grids and never touches
// files or pixel formats. This package supplies everything around it:
//
//   - Loading: ImageCache decodes PNG, JPEG and GIF files (with EXIF
//     orientation applied) and keeps them in memory by path
//   - Channel extraction: SplitChannels turns any image.Image into three
//     8-bit raster grids
//   - Rendering: DrawRectangle outlines a detected box, CropRegion extracts
//     it, and StageImage turns intermediate grids into viewable images
//   - Persistence: SaveImage and SaveStages write results to disk
//
// # Coordinate System
//
// All pixel coordinates are 0-based and relative to the image's top-left
// corner, regardless of the image's Bounds().Min. Rectangles use an
// inclusive Min and exclusive Max, matching image.Rectangle.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are
// stateless and never modify their input images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Rectangles that are empty or fall outside the image
//   - Unparseable colour strings
//   - File I/O and encoding failures
package imaging
