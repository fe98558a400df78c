package typst

import "strings"

// enhanceErrorMessage appends guidance for stderr patterns users hit often.
// The raw compiler output always stays first.
func enhanceErrorMessage(stderr string) string {
	lower := strings.ToLower(stderr)
	var hints []string

	// json() expects a file path; data arrives as a string via sys.inputs.
	if strings.Contains(lower, "file name too long") || strings.Contains(lower, "no such file or directory") {
		if strings.Contains(lower, "json") || strings.Contains(lower, "sys.inputs") {
			hints = append(hints, `HINT: If your template uses json(sys.inputs.at("data")), change it to:

#let data = json.decode(sys.inputs.at("data", default: "{}"))

The json() function expects a file path, but forma passes data as a string.
Use json.decode() to parse the JSON string directly.`)
		} else {
			hints = append(hints, `HINT: This error often occurs when using json(path) where path is not a file.
If you're parsing data from sys.inputs, use json.decode() instead of json().`)
		}
	}

	if strings.Contains(lower, "expected") && strings.Contains(lower, "found") {
		hints = append(hints, "HINT: This is a Typst syntax error. Check your template for typos or incorrect syntax.")
	}

	if strings.Contains(lower, "unknown variable") || strings.Contains(lower, "cannot find") {
		if strings.Contains(lower, "forma-data") || strings.Contains(lower, "editable") || strings.Contains(lower, "forma-lib") {
			hints = append(hints, `HINT: Make sure your template imports the forma library:

#import "@local/forma-lib:1.0.0": editable, editable-block, forma-data, md, get`)
		}
	}

	if strings.Contains(lower, "missing key") || strings.Contains(lower, "key not found") {
		hints = append(hints, `HINT: A required field is missing from your content file.
Check that all fields referenced in the template exist in your .toml content file.`)
	}

	if len(hints) == 0 {
		return stderr
	}
	return stderr + "\n\n" + strings.Join(hints, "\n\n")
}
