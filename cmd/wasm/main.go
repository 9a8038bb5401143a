//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/himanishpuri/StageCue/pkg/stagecue"
	"github.com/himanishpuri/StageCue/pkg/stagecue/audio"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorProcessing
)

// alignRecitation diffs what was said against the expected text.
// Args: expected string, actual string
// Returns: {error: number, data: object | string}
func alignRecitation(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 2 arguments: expected, actual")
	}
	if args[0].Type() != js.TypeString || args[1].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "expected and actual must be strings")
	}
	return makeDataResponse(stagecue.CheckText(args[0].String(), args[1].String()))
}

// deliveryGuidance returns tips and vocal characteristics for a context.
// Args: context object or JSON string
func deliveryGuidance(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 1 argument: context")
	}
	var cc guidance.CharacterContext
	if err := decodeArg(args[0], &cc); err != nil {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Invalid context: %v", err))
	}
	return makeDataResponse(guidance.Derive(cc))
}

// scorePerformance scores measured metrics against a character context.
// Args: context object or JSON string, metrics object or JSON string
func scorePerformance(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 2 arguments: context, metrics")
	}
	var cc guidance.CharacterContext
	if err := decodeArg(args[0], &cc); err != nil {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Invalid context: %v", err))
	}
	var m scoring.PerformanceMetrics
	if err := decodeArg(args[1], &m); err != nil {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Invalid metrics: %v", err))
	}
	return makeDataResponse(scoring.Analyze(cc, m))
}

// measureSamples turns raw PCM samples into performance metrics.
// Args: audioArray, sampleRate, channels
func measureSamples(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 3 arguments: audioArray, sampleRate, channels")
	}

	audioDataJS := args[0]
	if audioDataJS.Type() != js.TypeObject {
		return makeErrorResponse(ErrorInvalidArgs, "audioArray must be an Array or Float32Array")
	}
	if args[1].Type() != js.TypeNumber || args[2].Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "sampleRate and channels must be numbers")
	}

	sampleRate := args[1].Int()
	channels := args[2].Int()
	if sampleRate <= 0 {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Invalid sample rate: %d", sampleRate))
	}
	if channels < 1 || channels > 2 {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Channels must be 1 (mono) or 2 (stereo), got: %d", channels))
	}

	length := audioDataJS.Length()
	samples := make([]float64, length)
	for i := 0; i < length; i++ {
		val := audioDataJS.Index(i)
		if val.Type() != js.TypeNumber {
			return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("audioArray element %d is not a number", i))
		}
		samples[i] = val.Float()
	}

	if channels == 2 {
		samples = stereoToMono(samples)
	}
	return makeDataResponse(audio.Measure(samples, sampleRate, audio.DefaultMeterConfig()))
}

func stereoToMono(stereo []float64) []float64 {
	if len(stereo)%2 != 0 {
		stereo = stereo[:len(stereo)-1]
	}

	mono := make([]float64, len(stereo)/2)
	for i := range mono {
		mono[i] = (stereo[i*2] + stereo[i*2+1]) / 2.0
	}
	return mono
}

// decodeArg accepts either a JSON string or a plain JS object.
func decodeArg(v js.Value, out any) error {
	var raw string
	switch v.Type() {
	case js.TypeString:
		raw = v.String()
	case js.TypeObject:
		raw = js.Global().Get("JSON").Call("stringify", v).String()
	default:
		return fmt.Errorf("want object or JSON string, got %s", v.Type())
	}
	return json.Unmarshal([]byte(raw), out)
}

func makeDataResponse(data any) js.Value {
	encoded, err := json.Marshal(data)
	if err != nil {
		return makeErrorResponse(ErrorProcessing, fmt.Sprintf("Failed to encode result: %v", err))
	}
	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", js.Global().Get("JSON").Call("parse", string(encoded)))
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	logf := func(method, msg string) {
		if !console.IsUndefined() {
			console.Call(method, msg)
		}
	}
	logf("log", "🔧 StageCue WASM module initializing...")

	done := make(chan struct{})

	js.Global().Set("alignRecitation", js.FuncOf(alignRecitation))
	js.Global().Set("deliveryGuidance", js.FuncOf(deliveryGuidance))
	js.Global().Set("scorePerformance", js.FuncOf(scorePerformance))
	js.Global().Set("measureSamples", js.FuncOf(measureSamples))
	logf("log", "📝 alignRecitation, deliveryGuidance, scorePerformance, measureSamples registered")

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
		logf("log", "✅ wasmReady event dispatched")
	} else {
		logf("error", "❌ window object is undefined!")
	}

	<-done
}
