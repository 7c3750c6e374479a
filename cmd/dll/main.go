// Package main provides C-compatible exports for the xnb library.
// Build with: go build -buildmode=c-shared -o xnb.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} XnbResult;
*/
import "C"

import (
	"encoding/json"
	"fmt"
	"unsafe"

	"github.com/logicossoftware/go-xnb"
	"github.com/logicossoftware/go-xnb/content"
	"github.com/logicossoftware/go-xnb/texture"
	"github.com/sirupsen/logrus"
)

// diagnostics from the decoder go to stderr; the host sees only results
var log = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}()

func main() {}

// XnbFreeResult frees memory allocated by other Xnb functions.
// Must be called to avoid memory leaks.
//
//export XnbFreeResult
func XnbFreeResult(result C.XnbResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// XnbFreeString frees a C string allocated by Go.
//
//export XnbFreeString
func XnbFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func makeResult(data []byte) C.XnbResult {
	var result C.XnbResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

func makeError(err error) C.XnbResult {
	var result C.XnbResult
	result.error = C.CString(err.Error())
	return result
}

func makeJSON(v any) C.XnbResult {
	b, err := json.Marshal(v)
	if err != nil {
		return makeError(err)
	}
	return makeResult(b)
}

func goBytes(data *C.char, dataLen C.int) []byte {
	return C.GoBytes(unsafe.Pointer(data), dataLen)
}

// XnbInspect reads the header and type reader table of an XNB file.
// Returns XnbResult with a JSON object (header, body_size, type_readers,
// shared_resource_count) or error. Call XnbFreeResult when done.
//
//export XnbInspect
func XnbInspect(data *C.char, dataLen C.int) C.XnbResult {
	info, err := content.Inspect(goBytes(data, dataLen), xnb.WithLogger(log))
	if err != nil {
		return makeError(err)
	}
	return makeJSON(info)
}

// XnbDecompress returns the XNB file with its body expanded and the
// compression flags cleared. Call XnbFreeResult when done.
//
//export XnbDecompress
func XnbDecompress(data *C.char, dataLen C.int) C.XnbResult {
	out, err := xnb.Decompress(goBytes(data, dataLen), xnb.WithLogger(log))
	if err != nil {
		return makeError(err)
	}
	return makeResult(out)
}

// XnbValidate fully decodes an XNB file with the compiled-in readers.
// Returns NULL on success, or an error message string on failure.
// Call XnbFreeString on the result if non-NULL.
//
//export XnbValidate
func XnbValidate(data *C.char, dataLen C.int) *C.char {
	if _, err := content.ParseAny(goBytes(data, dataLen), xnb.WithLogger(log)); err != nil {
		return C.CString(err.Error())
	}
	return nil
}

// XnbTextureInfo decodes a Texture2D file.
// Returns XnbResult with a JSON object (format, width, height, levels) or
// error. Call XnbFreeResult when done.
//
//export XnbTextureInfo
func XnbTextureInfo(data *C.char, dataLen C.int) C.XnbResult {
	asset, err := content.ParseTexture2D(goBytes(data, dataLen), xnb.WithLogger(log))
	if err != nil {
		return makeError(err)
	}
	if asset.Primary == nil {
		return makeError(fmt.Errorf("texture: null primary object"))
	}
	return makeJSON(struct {
		*texture.Texture2D
		Levels int `json:"levels"`
	}{asset.Primary, len(asset.Primary.Levels)})
}

// XnbTextureLevel returns the raw data of one mip level of a Texture2D file.
// Call XnbFreeResult when done.
//
//export XnbTextureLevel
func XnbTextureLevel(data *C.char, dataLen C.int, level C.int) C.XnbResult {
	asset, err := content.ParseTexture2D(goBytes(data, dataLen), xnb.WithLogger(log))
	if err != nil {
		return makeError(err)
	}
	if asset.Primary == nil || int(level) < 0 || int(level) >= len(asset.Primary.Levels) {
		return makeError(fmt.Errorf("texture: no mip level %d", int(level)))
	}
	return makeResult(asset.Primary.Levels[level])
}

// XnbGetTypeReaderCount returns the number of type readers an XNB file
// declares, or -1 on error.
//
//export XnbGetTypeReaderCount
func XnbGetTypeReaderCount(data *C.char, dataLen C.int) C.int {
	info, err := content.Inspect(goBytes(data, dataLen), xnb.WithLogger(log))
	if err != nil {
		return -1
	}
	return C.int(len(info.TypeReaders))
}
