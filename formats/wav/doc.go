// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files into an audio.Source.
//
// Parsing is done by github.com/go-audio/wav, so files with extra chunks
// (LIST, fact, odd-sized chunks) are handled. Supported sample sizes are
// 8, 16, 24 and 32 bits; 8-bit samples are re-centered around zero.
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// The decoder needs to seek; readers that cannot seek are buffered in
// memory first.
package wav
