package tools

import (
	"coursecanvas/config"
	"coursecanvas/textedit"
)

// Defaults returns factories for every built-in tool. newOverlay supplies
// the text tool's input surface; onLayout receives page layout changes from
// the scene tool. Either may be nil.
func Defaults(newOverlay func() *textedit.Overlay, onLayout func(config.Layout)) []Factory {
	return []Factory{
		func() Tool { return NewSelectionTool() },
		func() Tool { return NewPenTool() },
		func() Tool { return NewBrushTool() },
		func() Tool {
			var o *textedit.Overlay
			if newOverlay != nil {
				o = newOverlay()
			}
			return NewTextTool(o)
		},
		func() Tool { return NewShapesTool() },
		func() Tool { return NewTablesTool() },
		func() Tool { return NewEraserTool() },
		func() Tool { return NewSceneTool(onLayout) },
		func() Tool { return NewPathTool() },
		func() Tool { return NewModifyTool() },
	}
}

// RegisterAll registers every factory, stopping at the first error.
func (m *Manager) RegisterAll(fs []Factory) error {
	for _, f := range fs {
		if err := m.Register(f); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Tool = (*SelectionTool)(nil)
	_ Tool = (*StrokeTool)(nil)
	_ Tool = (*TextTool)(nil)
	_ Tool = (*ShapesTool)(nil)
	_ Tool = (*TablesTool)(nil)
	_ Tool = (*EraserTool)(nil)
	_ Tool = (*SceneTool)(nil)
	_ Tool = (*PathTool)(nil)
	_ Tool = (*ModifyTool)(nil)

	_ TextReceiver = (*TextTool)(nil)
)
