package jsontemplate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hammerspace-solutions/aurora-aws/filereader/texttemplate"
)

// GetBytes renders the template file against data and returns the result as
// syntax-checked, minified or pretty-printed JSON.
func GetBytes(filename string, data interface{}, prettyPrint bool) ([]byte, error) {
	rendered, err := texttemplate.GetString(filename, data)
	if err != nil {
		return nil, err
	}
	return format([]byte(rendered), prettyPrint)
}

// GetBytesFromRaw is GetBytes for template text already held in memory.
func GetBytesFromRaw(name string, raw string, data interface{}, prettyPrint bool) ([]byte, error) {
	rendered, err := texttemplate.GetStringFromRaw(name, raw, data)
	if err != nil {
		return nil, err
	}
	return format([]byte(rendered), prettyPrint)
}

func format(renderedBytes []byte, prettyPrint bool) ([]byte, error) {
	//Use unmarshal function to do syntax validation
	var jsonHolder map[string]interface{}
	if err := json.Unmarshal(renderedBytes, &jsonHolder); err != nil {
		syntaxError, ok := err.(*json.SyntaxError)
		if ok {
			contextString := getContextString(renderedBytes, int(syntaxError.Offset), 3)
			return nil, fmt.Errorf("%v:\njson syntax error (offset=%d), in this region:\n-------\n%s\n-------\n", err, syntaxError.Offset, contextString)
		}
		return nil, err
	}

	// minify or pretty print JSON
	var buff bytes.Buffer
	var err error
	if prettyPrint {
		err = json.Indent(&buff, renderedBytes, "", "  ")
	} else {
		err = json.Compact(&buff, renderedBytes)
	}
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func getContextString(buf []byte, offset, lineCount int) string {
	// Prevent index out of range errors when we meet errors at the very end of json
	bufsize := len(buf)
	if offset >= bufsize {
		if bufsize > 0 {
			offset = bufsize - 1
		} else {
			offset = 0
		}
	}

	linesSeen := 0
	var leftLimit int
	for leftLimit = offset; leftLimit > 0 && linesSeen <= lineCount; leftLimit-- {
		if buf[leftLimit] == '\n' {
			linesSeen++
		}
	}

	linesSeen = 0
	var rightLimit int
	for rightLimit = offset + 1; rightLimit < len(buf) && linesSeen <= lineCount; rightLimit++ {
		if buf[rightLimit] == '\n' {
			linesSeen++
		}
	}

	return string(buf[leftLimit:rightLimit])
}
