package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/aykamko/minecrust/internal/player"
)

// Actions is what the input layer drives on the character controller.
type Actions interface {
	Look(dx, dy float32)
	PlaceBlock() bool
	BreakBlock() bool
	CycleActive(delta int)
	ToggleFly()
}

// Handler wires GLFW callbacks to controller actions and polls held
// keys into a movement intent each tick.
type Handler struct {
	window  *glfw.Window
	actions Actions

	lastX, lastY float64
	firstMouse   bool
}

func NewHandler(window *glfw.Window, actions Actions) *Handler {
	h := &Handler{window: window, actions: actions, firstMouse: true}

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if h.firstMouse {
			h.lastX, h.lastY = x, y
			h.firstMouse = false
			return
		}
		dx := x - h.lastX
		dy := y - h.lastY
		h.lastX, h.lastY = x, y
		h.actions.Look(float32(dx), float32(dy))
	})

	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch button {
		case glfw.MouseButtonLeft:
			h.actions.BreakBlock()
		case glfw.MouseButtonRight:
			h.actions.PlaceBlock()
		}
	})

	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if yoff > 0 {
			h.actions.CycleActive(1)
		} else if yoff < 0 {
			h.actions.CycleActive(-1)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF:
			h.actions.ToggleFly()
		case glfw.KeyE:
			h.actions.CycleActive(1)
		case glfw.KeyQ:
			h.actions.CycleActive(-1)
		}
	})

	return h
}

// Intent reads the held movement keys for the coming tick.
func (h *Handler) Intent() player.Intent {
	var in player.Intent
	if h.window.GetKey(glfw.KeyW) == glfw.Press {
		in.Forward++
	}
	if h.window.GetKey(glfw.KeyS) == glfw.Press {
		in.Forward--
	}
	if h.window.GetKey(glfw.KeyD) == glfw.Press {
		in.Strafe++
	}
	if h.window.GetKey(glfw.KeyA) == glfw.Press {
		in.Strafe--
	}
	if h.window.GetKey(glfw.KeySpace) == glfw.Press {
		in.Jump = true
		in.Up++
	}
	if h.window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		in.Up--
	}
	if h.window.GetKey(glfw.KeyLeftControl) == glfw.Press {
		in.Sprint = true
	}
	return in
}
