package keynote

import (
	"fmt"
	"strings"
)

// quoteAppleScript wraps s in an AppleScript string literal, escaping
// backslashes and double quotes.
func quoteAppleScript(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

func blankSlideScript() string {
	return `tell application "Keynote"
	activate
	if not (exists document 1) then
		try
			make new document with properties {document theme:theme "White"}
		on error -- Fallback if theme name is wrong
			make new document
		end try
		delay 1
	end if
	tell document 1
		if not (exists slide 1) then
			make new slide with properties {base layout:slide layout "Blank"}
		else
			set current slide to slide 1
		end if
		return "Blank slide ensured in front document."
	end tell
end tell`
}

func rectangleScript(x1, y1, width, height int) string {
	return fmt.Sprintf(`tell application "Keynote"
	if not (exists document 1) then
		return "Error: No Keynote document is open."
	end if
	tell front document
		tell current slide
			try
				make new shape with properties {position:{%[1]d, %[2]d}, width:%[3]d, height:%[4]d}
				return "Rectangle drawn successfully at (%[1]d,%[2]d) with size %[3]dx%[4]d."
			on error errMsg number errNum
				return "Error drawing rectangle: " & errMsg & " (Error " & errNum & ")"
			end try
		end tell
	end tell
end tell`, x1, y1, width, height)
}

func textBoxScript(text string, x, y, width, height int) string {
	return fmt.Sprintf(`tell application "Keynote"
	if not (exists document 1) then
		return "Error: No Keynote document is open."
	end if
	tell front document
		tell current slide
			try
				make new text item with properties {position:{%[2]d, %[3]d}, width:%[4]d, height:%[5]d, object text:%[1]s}
				return "Text added successfully in a box at (%[2]d,%[3]d)."
			on error errMsg number errNum
				return "Error adding text: " & errMsg & " (Error " & errNum & ")"
			end try
		end tell
	end tell
end tell`, quoteAppleScript(text), x, y, width, height)
}
