package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/aykamko/minecrust/internal/block"
	"github.com/aykamko/minecrust/internal/physics"
	"github.com/aykamko/minecrust/internal/world"
)

// Intent is the movement the input layer wants for one tick, in the
// player's local frame. Forward and Strafe are in [-1, 1].
type Intent struct {
	Forward float32
	Strafe  float32
	// Up drives vertical movement while flying.
	Up     float32
	Jump   bool
	Sprint bool
}

// Streamer is the part of the chunk manager the controller drives: it
// gets the player's post-physics block position every tick.
type Streamer interface {
	Update(focusX, focusY, focusZ int)
}

// Params are the controller tunables. Velocities are per tick.
type Params struct {
	MoveAccel       float32
	SprintMul       float32
	Gravity         float32
	JumpImpulse     float32
	GroundDamping   float32
	AirDamping      float32
	Reach           float32
	LookSensitivity float32
	Width           float32
	Height          float32
	EyeHeight       float32
}

// Controller turns movement intents into world-space motion, runs the
// physics step, and handles block interaction.
type Controller struct {
	Body  physics.Body
	Yaw   float32
	Pitch float32

	world    *world.World
	streamer Streamer
	params   Params

	active          int
	onActiveChanged func(block.Type)

	jumpCooldown int
}

func NewController(w *world.World, streamer Streamer, params Params, spawn mgl32.Vec3) *Controller {
	return &Controller{
		Body: physics.Body{
			Position: spawn,
			Width:    params.Width,
			Height:   params.Height,
		},
		Yaw:      -90,
		world:    w,
		streamer: streamer,
		params:   params,
	}
}

// OnActiveBlockChanged registers the callback fired when the active
// placement block cycles. It fires immediately with the current type.
func (c *Controller) OnActiveBlockChanged(fn func(block.Type)) {
	c.onActiveChanged = fn
	if fn != nil {
		fn(c.ActiveBlock())
	}
}

// ActiveBlock returns the block type placed by PlaceBlock.
func (c *Controller) ActiveBlock() block.Type {
	return block.Placeable[c.active]
}

// CycleActive advances the active block type by delta, wrapping.
func (c *Controller) CycleActive(delta int) {
	n := len(block.Placeable)
	c.active = ((c.active+delta)%n + n) % n
	if c.onActiveChanged != nil {
		c.onActiveChanged(c.ActiveBlock())
	}
}

// Look applies a mouse delta to yaw and pitch. Pitch is clamped short
// of straight up and down.
func (c *Controller) Look(dx, dy float32) {
	c.Yaw += dx * c.params.LookSensitivity
	c.Pitch -= dy * c.params.LookSensitivity
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Front returns the view direction.
func (c *Controller) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// walkBasis returns the horizontal forward and right vectors.
func (c *Controller) walkBasis() (front, right mgl32.Vec3) {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	front = mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}
	right = front.Cross(mgl32.Vec3{0, 1, 0})
	return front, right
}

// Eye returns the camera position.
func (c *Controller) Eye() mgl32.Vec3 {
	return c.Body.Position.Add(mgl32.Vec3{0, c.params.EyeHeight, 0})
}

// Tick runs one fixed-timestep update: intent to velocity, jump,
// physics step, then the streaming focus update.
func (c *Controller) Tick(intent Intent) {
	front, right := c.walkBasis()
	dir := front.Mul(intent.Forward).Add(right.Mul(intent.Strafe))
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	accel := c.params.MoveAccel
	if intent.Sprint {
		accel *= c.params.SprintMul
	}
	c.Body.Velocity = c.Body.Velocity.Add(dir.Mul(accel))
	if c.Body.Flying {
		c.Body.Velocity[1] += intent.Up * accel
	}

	if c.jumpCooldown > 0 {
		c.jumpCooldown--
	}
	if intent.Jump && c.Body.OnGround && c.jumpCooldown == 0 {
		c.Body.Velocity[1] = c.params.JumpImpulse
		c.jumpCooldown = 2
	}

	c.Body.Step(c.world, c.params.Gravity)
	c.Body.Damp(c.params.GroundDamping, c.params.AirDamping)

	if c.streamer != nil {
		p := c.Body.Position
		c.streamer.Update(
			int(math.Floor(float64(p.X()))),
			int(math.Floor(float64(p.Y()))),
			int(math.Floor(float64(p.Z()))),
		)
	}
}

// ToggleFly flips flying mode, which bypasses gravity.
func (c *Controller) ToggleFly() {
	c.Body.Flying = !c.Body.Flying
	if c.Body.Flying {
		c.Body.Velocity[1] = 0
	}
}

// BreakBlock removes the solid block under the crosshair, if any.
func (c *Controller) BreakBlock() bool {
	hit, _, ok := c.raycast()
	if !ok {
		return false
	}
	return c.world.SetBlock(hit[0], hit[1], hit[2], block.Air)
}

// PlaceBlock puts the active block in the cell in front of the face
// under the crosshair. Placement into the player's own volume is
// refused.
func (c *Controller) PlaceBlock() bool {
	_, prev, ok := c.raycast()
	if !ok {
		return false
	}
	cell := physics.BlockAABB(prev[0], prev[1], prev[2])
	if cell.Intersects(c.Body.Box()) {
		return false
	}
	if t, _ := c.world.GetBlock(prev[0], prev[1], prev[2]); t.Solid() {
		return false
	}
	return c.world.SetBlock(prev[0], prev[1], prev[2], c.ActiveBlock())
}

// raycast walks the view ray cell by cell out to the reach distance,
// returning the first solid cell and the cell stepped through just
// before it.
func (c *Controller) raycast() (hit, prev [3]int, ok bool) {
	origin := c.Eye()
	dir := c.Front()

	var cell [3]int
	var step [3]int
	var tMax, tDelta [3]float32
	for i := 0; i < 3; i++ {
		cell[i] = int(math.Floor(float64(origin[i])))
		if dir[i] > 0 {
			step[i] = 1
			tMax[i] = (float32(cell[i]+1) - origin[i]) / dir[i]
			tDelta[i] = 1 / dir[i]
		} else if dir[i] < 0 {
			step[i] = -1
			tMax[i] = (origin[i] - float32(cell[i])) / -dir[i]
			tDelta[i] = 1 / -dir[i]
		} else {
			step[i] = 0
			tMax[i] = float32(math.Inf(1))
			tDelta[i] = float32(math.Inf(1))
		}
	}

	prev = cell
	var t float32
	for t <= c.params.Reach {
		if bt, loaded := c.world.GetBlock(cell[0], cell[1], cell[2]); loaded && bt.Solid() {
			return cell, prev, true
		}
		prev = cell
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
		cell[axis] += step[axis]
	}
	return hit, prev, false
}
