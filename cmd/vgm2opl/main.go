package main

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/reader"
	"github.com/handegar/retroopl/settings"
	"github.com/handegar/retroopl/utils"
	"github.com/handegar/retroopl/vgm"
)

func parseCommandLineParameters() {
	flag.StringVar(&settings.InputVGM, "in", settings.InputVGM, "Input VGM or VGZ file")
	flag.StringVar(&settings.OutputScript, "out", settings.OutputScript, "Output OPL2 script (default stdout)")
	flag.IntVar(&settings.RepeatCount, "repeat", settings.RepeatCount, "1: play once, 2: play the loop section once more")
	flag.BoolVar(&settings.ShorthandWaits, "shorthand", settings.ShorthandWaits, "Accept the 0x71-0x7f short waits")
	flag.BoolVar(&settings.PrintCode, "print-code", settings.PrintCode, "Describe each register write in a comment")
	flag.BoolVar(&settings.PrintDebug, "print-debug", settings.PrintDebug, "Print debug info")
	flag.Parse()

	// "vgm2opl in.vgm 1 > out.txt"
	args := flag.Args()
	if len(args) > 0 {
		settings.InputVGM = args[0]
	}
	if len(args) > 1 {
		repeat, err := strconv.Atoi(args[1])
		if err != nil {
			utils.Errorf("Invalid repeat count '%s'", args[1])
			os.Exit(1)
		}
		settings.RepeatCount = repeat
	}
	if len(args) > 2 {
		utils.Errorf("Too many arguments")
		os.Exit(1)
	}
}

func convert(out io.Writer) error {
	file, err := reader.ReadVGMFile(settings.InputVGM)
	if err != nil {
		return err
	}
	utils.Logf("VGM version %x, %d bytes of data at 0x%x, loop at data+0x%x",
		file.Version, len(file.Data), file.DataOffset, file.LoopOffset)
	if settings.RepeatCount == 2 && !file.HasLoop() {
		utils.Warnf("'%s' has no loop, the whole song is played twice", settings.InputVGM)
	}

	dec := vgm.NewDecoder(file, settings.RepeatCount)
	dec.ShorthandWaits = settings.ShorthandWaits
	dec.Annotate = settings.PrintCode
	return dec.Convert(out)
}

// Runs 'conv' into a new file. A failed conversion leaves no file behind.
func writeScript(filename string, conv func(out io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return base.WrapIO(err, "could not create '%s'", filename)
	}

	err = conv(f)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = base.WrapIO(cerr, "closing '%s'", filename)
	}

	if err != nil {
		os.Remove(filename)
		return err
	}
	return nil
}

func main() {
	parseCommandLineParameters()

	if settings.InputVGM == "" {
		utils.Errorf("No VGM file specified. Use the '-in' parameter.")
		os.Exit(1)
	}

	var err error
	if settings.OutputScript == "" {
		err = convert(os.Stdout)
	} else {
		err = writeScript(settings.OutputScript, convert)
	}

	if err != nil {
		utils.Errorf("%s", err)
		os.Exit(1)
	}

	if settings.OutputScript != "" {
		utils.Printf("Wrote '%s'", settings.OutputScript)
	}
}
