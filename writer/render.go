package writer

import "github.com/ericlevine/zxcore/bitutil"

// renderMatrix scales a 2D symbol, one bit per module, into an output of at
// least width x height with a quiet zone of margin modules on every side.
// Modules are square and the symbol is centred.
func renderMatrix(code *bitutil.BitMatrix, width, height, margin int) (*bitutil.BitMatrix, error) {
	inputWidth := code.Width()
	inputHeight := code.Height()
	fullWidth := inputWidth + margin*2
	fullHeight := inputHeight + margin*2
	outputWidth := max(width, fullWidth)
	outputHeight := max(height, fullHeight)

	multiple := min(outputWidth/fullWidth, outputHeight/fullHeight)
	leftPadding := (outputWidth - inputWidth*multiple) / 2
	topPadding := (outputHeight - inputHeight*multiple) / 2

	output, err := bitutil.NewBitMatrixWithSize(outputWidth, outputHeight)
	if err != nil {
		return nil, err
	}
	for inputY := 0; inputY < inputHeight; inputY++ {
		outputY := topPadding + inputY*multiple
		for inputX := 0; inputX < inputWidth; inputX++ {
			if code.Get(inputX, inputY) {
				outputX := leftPadding + inputX*multiple
				if err := output.SetRegion(outputX, outputY, multiple, multiple); err != nil {
					return nil, err
				}
			}
		}
	}
	return output, nil
}

// renderLinear scales the first row of a 1D symbol into an output at least
// width wide, with margin modules of quiet zone on each side, and repeats it
// down every one of max(1, height) rows.
func renderLinear(code *bitutil.BitMatrix, width, height, margin int) (*bitutil.BitMatrix, error) {
	inputWidth := code.Width()
	fullWidth := inputWidth + margin*2
	outputWidth := max(width, fullWidth)
	outputHeight := max(height, 1)

	multiple := outputWidth / fullWidth
	leftPadding := (outputWidth - inputWidth*multiple) / 2

	output, err := bitutil.NewBitMatrixWithSize(outputWidth, outputHeight)
	if err != nil {
		return nil, err
	}
	bars := code.Row(0, nil)
	for inputX := bars.GetNextSet(0); inputX < inputWidth; {
		end := bars.GetNextUnset(inputX)
		if err := output.SetRegion(leftPadding+inputX*multiple, 0, (end-inputX)*multiple, outputHeight); err != nil {
			return nil, err
		}
		inputX = bars.GetNextSet(end)
	}
	return output, nil
}
