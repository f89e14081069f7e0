package filegen

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// WriteFile writes content to outputFilePath, creating parent
// directories as needed. It refuses to overwrite an existing file.
func WriteFile(outputFilePath string, content []byte) error {
	dir := filepath.Dir(outputFilePath)

	if _, err := os.Stat(dir); err != nil && os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("Error creating directory: %v", err)
		}
	}

	out, err := os.OpenFile(outputFilePath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("Error opening %s : %v", outputFilePath, err)
	}
	defer out.Close()
	if _, err := out.Write(content); err != nil {
		return fmt.Errorf("Error writing %s : %v", outputFilePath, err)
	}
	return nil
}

// CreateFileFromTemplate renders fileTemplate against templateOpts and writes
// the result to outputFilePath. It refuses to overwrite an existing file.
func CreateFileFromTemplate(outputFilePath string, templateOpts interface{}, fileTemplate []byte) error {
	cfgTemplate, err := template.New(filepath.Base(outputFilePath)).Parse(string(fileTemplate))
	if err != nil {
		return fmt.Errorf("Error parsing default config template: %v", err)
	}

	dir := filepath.Dir(outputFilePath)

	if _, err := os.Stat(dir); err != nil && os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("Error creating directory: %v", err)
		}
	}

	out, err := os.OpenFile(outputFilePath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("Error opening %s : %v", outputFilePath, err)
	}
	defer out.Close()
	if err := cfgTemplate.Execute(out, templateOpts); err != nil {
		return fmt.Errorf("Error exec-ing default config template: %v", err)
	}
	return nil
}
