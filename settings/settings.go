package settings

var Version = "0.1"

// Script to read, stdin when empty
var InputScript = ""

var OutputWav = "output.wav"

// Output sampling rate (44100 or 48000)
var SampleRate = 44100

// Number of samples held in memory before they are written out
var BufferSamples = 4096

// VGM file to convert
var InputVGM = ""

// Script output path, stdout when empty
var OutputScript = ""

// 1 plays the VGM data once, 2 replays the loop section once more
var RepeatCount = 1

// Accept the compact 0x71..0x7f VGM waits
var ShorthandWaits = false

// Write a comment line describing each register write
var PrintCode = false

// Print extra debug info
var PrintDebug = false

// Full screen debugger
var Debugger = false

// Single key step prompt
var StepDebug = false

// Read the finished WAV file back and report what was written
var Verify = false
