package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ericlevine/zxcore"
	"github.com/ericlevine/zxcore/binarizer"
	"github.com/ericlevine/zxcore/bitutil"

	// Register the format writers.
	_ "github.com/ericlevine/zxcore/writer"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  zxtool binarize [flags] <image-file> [image-file...]\n")
	fmt.Fprintf(os.Stderr, "  zxtool encode [flags] <contents>\n\n")
	fmt.Fprintf(os.Stderr, "Run 'zxtool <command> -h' for the flags of a command.\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var code int
	switch os.Args[1] {
	case "binarize":
		code = runBinarize(os.Args[2:])
	case "encode":
		code = runEncode(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "zxtool: unknown command %q\n", os.Args[1])
		usage()
		code = 1
	}
	os.Exit(code)
}

// transformOptions are the BinaryBitmap transforms requested on the command
// line, applied in field order.
type transformOptions struct {
	crop     []int
	rotate   int
	rotate45 bool
	invert   bool
}

func runBinarize(args []string) int {
	fs := flag.NewFlagSet("binarize", flag.ExitOnError)
	method := fs.String("binarizer", "hybrid", "binarizer to use: global or hybrid")
	crop := fs.String("crop", "", "crop to `left,top,width,height` before binarizing")
	rotate := fs.Int("rotate", 0, "number of 90 degree counterclockwise turns")
	rotate45 := fs.Bool("rotate45", false, "turn a further 45 degrees counterclockwise")
	invert := fs.Bool("invert", false, "invert luminance before binarizing")
	luma := fs.Bool("luma", false, "print the luminance source instead of the black matrix")
	set := fs.String("set", "X ", "text printed for black modules")
	unset := fs.String("unset", "  ", "text printed for white modules")
	out := fs.String("o", "", "write the black matrix as a PNG `file` instead of printing it")
	scale := fs.Float64("scale", 1, "scale factor applied to PNG output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zxtool binarize [flags] <image-file> [image-file...]\n\n")
		fmt.Fprintf(os.Stderr, "Binarize images (PNG, JPEG, GIF, BMP, TIFF, WebP) and print the result.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() == 0 {
		fs.Usage()
		return 1
	}
	if *out != "" && fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "binarize: -o takes a single image\n")
		return 1
	}
	if *scale <= 0 {
		fmt.Fprintf(os.Stderr, "binarize: -scale must be positive\n")
		return 1
	}
	opts := transformOptions{rotate: *rotate, rotate45: *rotate45, invert: *invert}
	if *crop != "" {
		rect, err := parseRect(*crop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "binarize: -crop: %v\n", err)
			return 1
		}
		opts.crop = rect
	}

	exitCode := 0
	for _, path := range fs.Args() {
		bitmap, err := loadBitmap(path, *method, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
			exitCode = 1
			continue
		}
		if fs.NArg() > 1 {
			fmt.Printf("%s:\n", path)
		}
		if *luma {
			text, err := zxcore.LuminanceString(bitmap.LuminanceSource())
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
				exitCode = 1
				continue
			}
			fmt.Print(text)
			continue
		}
		matrix, err := bitmap.BlackMatrix()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
			exitCode = 1
			continue
		}
		if *out != "" {
			if err := writePNG(*out, matrix, *scale); err != nil {
				fmt.Fprintf(os.Stderr, "%s: error: %v\n", *out, err)
				exitCode = 1
			}
			continue
		}
		fmt.Print(matrix.StringWithChars(*set, *unset))
	}
	return exitCode
}

func loadBitmap(path, method string, opts transformOptions) (*zxcore.BinaryBitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	source := zxcore.NewImageLuminanceSource(img)
	var b zxcore.Binarizer
	switch method {
	case "global":
		b = binarizer.NewGlobalHistogram(source)
	case "hybrid":
		b = binarizer.NewHybrid(source)
	default:
		return nil, fmt.Errorf("unknown binarizer %q", method)
	}
	return transform(zxcore.NewBinaryBitmap(b), opts)
}

func transform(bitmap *zxcore.BinaryBitmap, opts transformOptions) (*zxcore.BinaryBitmap, error) {
	var err error
	if opts.crop != nil {
		bitmap, err = bitmap.Crop(opts.crop[0], opts.crop[1], opts.crop[2], opts.crop[3])
		if err != nil {
			return nil, fmt.Errorf("crop: %w", err)
		}
	}
	for i := 0; i < ((opts.rotate%4)+4)%4; i++ {
		bitmap, err = bitmap.RotateCounterClockwise()
		if err != nil {
			return nil, fmt.Errorf("rotate: %w", err)
		}
	}
	if opts.rotate45 {
		bitmap, err = bitmap.RotateCounterClockwise45()
		if err != nil {
			return nil, fmt.Errorf("rotate: %w", err)
		}
	}
	if opts.invert {
		bitmap = bitmap.Invert()
	}
	return bitmap, nil
}

func parseRect(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("want left,top,width,height, got %q", s)
	}
	rect := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		rect[i] = v
	}
	return rect, nil
}

func runEncode(args []string) int {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	formatName := fs.String("format", "QR_CODE", "barcode format, e.g. QR_CODE, CODE_128, EAN_13")
	width := fs.Int("w", 0, "minimum output width in pixels")
	height := fs.Int("h", 0, "minimum output height in pixels")
	margin := fs.Int("margin", -1, "quiet zone in modules (-1 for the format default)")
	ecc := fs.String("ecc", "", "error correction level (QR: L, M, Q, H)")
	cs := fs.String("charset", "", "character set to encode the contents in")
	out := fs.String("o", "", "write a PNG `file` instead of printing the matrix")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zxtool encode [flags] <contents>\n\n")
		fmt.Fprintf(os.Stderr, "Encode contents as a barcode.\n\n")
		fmt.Fprintf(os.Stderr, "Formats: %v\n\n", zxcore.WriterFormats())
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() == 0 {
		fs.Usage()
		return 1
	}
	format, err := zxcore.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		return 1
	}
	opts := &zxcore.EncodeOptions{ErrorCorrection: *ecc, CharacterSet: *cs}
	if *margin >= 0 {
		opts.Margin = margin
	}

	matrix, err := zxcore.Encode(strings.Join(fs.Args(), " "), format, *width, *height, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: error: %v\n", err)
		return 1
	}
	if *out == "" {
		fmt.Print(matrix.String())
		return 0
	}
	if err := writePNG(*out, matrix, 1); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", *out, err)
		return 1
	}
	return 0
}

func writePNG(path string, matrix *bitutil.BitMatrix, scale float64) error {
	var img image.Image = zxcore.BitMatrixToImage(matrix)
	if scale != 1 {
		b := img.Bounds()
		w := max(1, int(float64(b.Dx())*scale))
		h := max(1, int(float64(b.Dy())*scale))
		dst := image.NewGray(image.Rect(0, 0, w, h))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
