package tools

import (
	"strconv"

	"coursecanvas/core"
	"coursecanvas/scene"
)

// Setting keys understood by the built-in tools. Tools ignore keys they do
// not know.
const (
	SettingColor           = "color"
	SettingFill            = "fill"
	SettingWidth           = "width"
	SettingOpacity         = "opacity"
	SettingFontSize        = "fontSize"
	SettingShape           = "shape"
	SettingRows            = "rows"
	SettingColumns         = "columns"
	SettingAdherence       = "adherence"
	SettingTolerance       = "tolerance"
	SettingTarget          = "target"
	SettingTime            = "time"
	SettingCaptureKeyframe = "captureKeyframe"
	SettingRotation        = "rotation"
	SettingScale           = "scale"
	SettingBackground      = "background"
	SettingPage            = "page"
	SettingOrientation     = "orientation"
)

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case string:
		n, err := strconv.Atoi(x)
		return n, err == nil
	}
	f, ok := asFloat(v)
	return int(f), ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asTrigger reports whether v fires an action setting: true, or any
// non-bool value.
func asTrigger(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return v != nil
}

func asNodeID(v any) (scene.NodeID, bool) {
	if id, ok := v.(scene.NodeID); ok {
		return id, true
	}
	n, ok := asInt(v)
	return scene.NodeID(n), ok
}

// asScale accepts a uniform factor or a core.Point.
func asScale(v any) (core.Point, bool) {
	if p, ok := v.(core.Point); ok {
		return p, true
	}
	f, ok := asFloat(v)
	return core.Pt(f, f), ok
}
