package main

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/handegar/retroopl/base"
	"github.com/handegar/retroopl/debugger"
	"github.com/handegar/retroopl/dsp"
	"github.com/handegar/retroopl/reader"
	"github.com/handegar/retroopl/script"
	"github.com/handegar/retroopl/settings"
	"github.com/handegar/retroopl/utils"
	"github.com/handegar/retroopl/writer"
)

// A script.Observer which owns the terminal while the script runs
type interactiveObserver interface {
	script.Observer
	Init() error
	Close()
}

func parseCommandLineParameters() {
	flag.StringVar(&settings.InputScript, "in", settings.InputScript, "Input OPL2 script (default stdin)")
	flag.StringVar(&settings.OutputWav, "out", settings.OutputWav, "Output wav-file")
	flag.IntVar(&settings.SampleRate, "rate", settings.SampleRate, "Output sampling rate (44100 or 48000)")
	flag.IntVar(&settings.BufferSamples, "buffer", settings.BufferSamples, "Samples buffered before writing")
	flag.BoolVar(&settings.Debugger, "debug", settings.Debugger, "Run the script in the debugger")
	flag.BoolVar(&settings.StepDebug, "step", settings.StepDebug, "Step through the script command by command")
	flag.BoolVar(&settings.Verify, "verify", settings.Verify, "Read the wav-file back and print what was written")
	flag.BoolVar(&settings.PrintDebug, "print-debug", settings.PrintDebug, "Print debug info")
	flag.Parse()

	// "retroopl out.wav 44100 < script"
	args := flag.Args()
	if len(args) > 0 {
		settings.OutputWav = args[0]
	}
	if len(args) > 1 {
		rate, err := strconv.Atoi(args[1])
		if err != nil {
			utils.Errorf("Invalid sampling rate '%s'", args[1])
			os.Exit(1)
		}
		settings.SampleRate = rate
	}
	if len(args) > 2 {
		utils.Errorf("Too many arguments")
		os.Exit(1)
	}
}

func openInput() (io.ReadCloser, error) {
	if settings.InputScript == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(settings.InputScript)
	if err != nil {
		return nil, base.WrapIO(err, "failed to open script '%s'", settings.InputScript)
	}
	return f, nil
}

// Renders the script into the already created output file
func render(input io.Reader, output *os.File, state *dsp.State) error {
	sink, err := writer.NewWAVSink(output, settings.SampleRate)
	if err != nil {
		return err
	}

	buf := writer.NewSampleBuffer(settings.BufferSamples, sink)
	interp, err := script.New(state, buf, int32(settings.SampleRate))
	if err != nil {
		return err
	}

	var obs interactiveObserver
	if settings.Debugger {
		obs = debugger.New()
	} else if settings.StepDebug {
		obs = debugger.NewStepper(state)
	}
	if obs != nil {
		if err := obs.Init(); err != nil {
			return err
		}
		interp.Observer = obs
	}

	err = interp.Run(input)
	if obs != nil {
		obs.Close()
	}
	if err != nil {
		return err
	}

	utils.Logf("Control rate %d Hz, %d ticks, %d samples",
		interp.ControlRate(), interp.Clock(), interp.Written())

	return sink.Close()
}

func main() {
	utils.Printf("OPL2 script player v%s", settings.Version)
	parseCommandLineParameters()

	input, err := openInput()
	if err != nil {
		utils.Errorf("%s", err)
		os.Exit(1)
	}
	defer input.Close()

	output, err := os.Create(settings.OutputWav)
	if err != nil {
		utils.Errorf("Could not create '%s': %s", settings.OutputWav, err)
		os.Exit(1)
	}

	state := dsp.NewState()
	err = render(input, output, state)
	if cerr := output.Close(); cerr != nil && err == nil {
		err = base.WrapIO(cerr, "closing '%s'", settings.OutputWav)
	}

	if err != nil {
		// A half written file has a broken header
		os.Remove(settings.OutputWav)
		if errors.Is(err, debugger.ErrQuit) {
			utils.Warnf("Aborted, '%s' not written", settings.OutputWav)
		} else {
			utils.Errorf("%s", err)
		}
		input.Close()
		os.Exit(1)
	}

	utils.Printf("Wrote '%s'", settings.OutputWav)

	if settings.PrintDebug {
		state.DebugFlags.Print()
	}

	if settings.Verify {
		info, err := reader.ReadWAV(settings.OutputWav)
		if err != nil {
			utils.Errorf("Verify failed: %s", err)
			os.Exit(1)
		}
		utils.Printf("%d Hz, %d channel(s), %d bit, %d samples (%.2f s), peak %.3f",
			info.SampleRate, info.Channels, info.Precision*8, info.Samples,
			info.Seconds(), info.Peak)
	}
}
