package keynote

import (
	"fmt"
	"strings"
	"time"

	"github.com/baalimago/handsfree/internal/hostkit"
	"github.com/baalimago/handsfree/pkg/catalog"
)

// Register mounts every Keynote operation on the registry.
func Register(reg *hostkit.Registry) {
	reg.Register(Open)
	reg.Register(BlankSlide)
	reg.Register(Rectangle)
	reg.Register(TextBox)
	reg.Register(Add)
}

type OpenTool catalog.Specification

var Open = OpenTool{
	Name:        "open_keynote",
	Description: "Opens the Keynote application.",
}

func (o OpenTool) Call(input catalog.Input) (string, error) {
	if err := openApp("Keynote"); err != nil {
		return "", err
	}
	// Give Keynote time to launch before followup scripting.
	time.Sleep(launchSettle)
	return "Keynote opened successfully.", nil
}

func (o OpenTool) Specification() catalog.Specification {
	return catalog.Specification(Open)
}

type BlankSlideTool catalog.Specification

var BlankSlide = BlankSlideTool{
	Name:        "create_blank_keynote_slide",
	Description: "Creates a new Keynote document (if none open) and ensures a blank slide exists.",
}

func (b BlankSlideTool) Call(input catalog.Input) (string, error) {
	return runScript(blankSlideScript())
}

func (b BlankSlideTool) Specification() catalog.Specification {
	return catalog.Specification(BlankSlide)
}

type RectangleTool catalog.Specification

var Rectangle = RectangleTool{
	Name:        "draw_keynote_rectangle",
	Description: "Draws a rectangle shape on the current Keynote slide. Coordinates (x1, y1) are the top-left corner, width and height determine the size. Position and size are in points.",
	Inputs: &catalog.InputSchema{
		Type:     "object",
		Required: []string{"x1", "y1", "width", "height"},
		Properties: map[string]catalog.ParameterObject{
			"x1":     {Type: "integer", Description: "Horizontal position of the top-left corner, in points."},
			"y1":     {Type: "integer", Description: "Vertical position of the top-left corner, in points."},
			"width":  {Type: "integer", Description: "Width of the rectangle, in points."},
			"height": {Type: "integer", Description: "Height of the rectangle, in points."},
		},
	},
}

func (r RectangleTool) Call(input catalog.Input) (string, error) {
	x1, err := input.Int("x1")
	if err != nil {
		return "", err
	}
	y1, err := input.Int("y1")
	if err != nil {
		return "", err
	}
	width, err := input.Int("width")
	if err != nil {
		return "", err
	}
	height, err := input.Int("height")
	if err != nil {
		return "", err
	}
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("width and height should be positive, got %vx%v", width, height)
	}
	return runScript(rectangleScript(x1, y1, width, height))
}

func (r RectangleTool) Specification() catalog.Specification {
	return catalog.Specification(Rectangle)
}

type TextBoxTool catalog.Specification

var TextBox = TextBoxTool{
	Name:        "add_text_in_keynote",
	Description: "Adds a text box with the specified text to the current Keynote slide. (x, y) is the top-left position, width and height define the box size. Position and size are in points.",
	Inputs: &catalog.InputSchema{
		Type:     "object",
		Required: []string{"text", "x", "y", "width", "height"},
		Properties: map[string]catalog.ParameterObject{
			"text":   {Type: "string", Description: "Text to place inside the box."},
			"x":      {Type: "integer", Description: "Horizontal position of the top-left corner, in points."},
			"y":      {Type: "integer", Description: "Vertical position of the top-left corner, in points."},
			"width":  {Type: "integer", Description: "Width of the text box, in points."},
			"height": {Type: "integer", Description: "Height of the text box, in points."},
		},
	},
}

func (tb TextBoxTool) Call(input catalog.Input) (string, error) {
	text, err := input.String("text")
	if err != nil {
		return "", err
	}
	x, err := input.Int("x")
	if err != nil {
		return "", err
	}
	y, err := input.Int("y")
	if err != nil {
		return "", err
	}
	width, err := input.Int("width")
	if err != nil {
		return "", err
	}
	height, err := input.Int("height")
	if err != nil {
		return "", err
	}
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("width and height should be positive, got %vx%v", width, height)
	}
	out, err := runScript(textBoxScript(text, x, y, width, height))
	if err != nil {
		return "", err
	}
	// Rebuild the success message with the raw text, since the script
	// only carries the escaped form.
	if strings.HasPrefix(out, "Text added successfully") {
		out = fmt.Sprintf("Text '%v' added successfully in a box at (%v,%v).", text, x, y)
	}
	return out, nil
}

func (tb TextBoxTool) Specification() catalog.Specification {
	return catalog.Specification(TextBox)
}

type AddTool catalog.Specification

var Add = AddTool{
	Name:        "add",
	Description: "Add two numbers.",
	Inputs: &catalog.InputSchema{
		Type:     "object",
		Required: []string{"a", "b"},
		Properties: map[string]catalog.ParameterObject{
			"a": {Type: "integer", Description: "First addend."},
			"b": {Type: "integer", Description: "Second addend."},
		},
	},
}

func (a AddTool) Call(input catalog.Input) (string, error) {
	first, err := input.Int("a")
	if err != nil {
		return "", err
	}
	second, err := input.Int("b")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", first+second), nil
}

func (a AddTool) Specification() catalog.Specification {
	return catalog.Specification(Add)
}
