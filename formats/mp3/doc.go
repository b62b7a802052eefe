// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// go-mp3 always produces 16-bit stereo, so every source reports two
// channels and a bit depth of 16 regardless of the file's channel mode.
//
//	file, _ := os.Open("audio.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]int32, 4096)
//	n, err := source.ReadSamples(buf)
//
// MP3 is lossy; encoding it to ALAC keeps the decoded PCM exactly but
// cannot restore what the MP3 encoder discarded.
package mp3
