package physics

import (
	"github.com/ByteArena/box2d"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

// CreateBall makes the dynamic circle that backs a player or particle
// instance. The fixture carries the owning entity, so rigid contacts
// resolve without any hierarchy walk.
func (w *World) CreateBall(e donburi.Entity, pos, vel mgl32.Vec2, radius float32, immune bool) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = toMeters(pos)
	bd.LinearVelocity = toMeters(vel)
	bd.LinearDamping = parameter.LinearDamping
	bd.Bullet = true
	body := w.b2.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = float64(radius) / Scale

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = parameter.BodyDensity
	fd.Restitution = parameter.Restitution
	fd.Friction = parameter.Friction
	fd.Filter = box2d.MakeB2Filter()
	if immune {
		fd.Filter.CategoryBits = CategoryImmune
		fd.Filter.MaskBits = MaskImmune
	} else {
		fd.Filter.CategoryBits = CategoryActive
		fd.Filter.MaskBits = MaskActive
	}
	fd.UserData = e
	body.CreateFixtureFromDef(&fd)
	return body
}

// AttachProbe adds the overlap sensor to a ball. Probes only touch
// other probes, so filtered-out pairs still report contacts. The
// sensor carries its own child entity, not the owner.
func (w *World) AttachProbe(body *box2d.B2Body, probe donburi.Entity, radius float32) {
	shape := box2d.MakeB2CircleShape()
	shape.M_radius = float64(radius) / Scale

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.IsSensor = true
	fd.Filter = box2d.MakeB2Filter()
	fd.Filter.CategoryBits = CategoryProbe
	fd.Filter.MaskBits = MaskProbe
	fd.UserData = probe
	body.CreateFixtureFromDef(&fd)
}

// CreateObstacle makes a static terrain body from a level definition.
func (w *World) CreateObstacle(e donburi.Entity, ob *level.Obstacle) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	bd.Position = toMeters(ob.Position)
	bd.Angle = float64(ob.Angle)
	body := w.b2.CreateBody(&bd)

	shape := box2d.MakeB2PolygonShape()
	if ob.Polygon() {
		verts := make([]box2d.B2Vec2, len(ob.Vertices))
		for i, v := range ob.Vertices {
			verts[i] = box2d.MakeB2Vec2(float64(v.X())/Scale, float64(v.Y())/Scale)
		}
		shape.Set(verts, len(verts))
	} else {
		shape.SetAsBox(float64(ob.Size.X())/2/Scale, float64(ob.Size.Y())/2/Scale)
	}

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Friction = parameter.Friction
	fd.Filter = box2d.MakeB2Filter()
	fd.Filter.CategoryBits = CategoryTerrain
	fd.Filter.MaskBits = MaskTerrain
	fd.UserData = e
	body.CreateFixtureFromDef(&fd)
	return body
}

// CreateWalls boxes in the arena with one static body of four
// fixtures just outside the visible bounds.
func (w *World) CreateWalls(e donburi.Entity) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	body := w.b2.CreateBody(&bd)

	hw := (parameter.ArenaWidth/2 + parameter.WallThickness/2) / Scale
	hh := (parameter.ArenaHeight/2 + parameter.WallThickness/2) / Scale
	ht := parameter.WallThickness / 2 / Scale
	walls := []struct {
		hx, hy float64
		center box2d.B2Vec2
	}{
		{hw, ht, box2d.MakeB2Vec2(0, hh)},
		{hw, ht, box2d.MakeB2Vec2(0, -hh)},
		{ht, hh, box2d.MakeB2Vec2(hw, 0)},
		{ht, hh, box2d.MakeB2Vec2(-hw, 0)},
	}
	for _, wall := range walls {
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBoxFromCenterAndAngle(wall.hx, wall.hy, wall.center, 0)
		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.Friction = parameter.Friction
		fd.Filter = box2d.MakeB2Filter()
		fd.Filter.CategoryBits = CategoryTerrain
		fd.Filter.MaskBits = MaskTerrain
		fd.UserData = e
		body.CreateFixtureFromDef(&fd)
	}
	return body
}

// SetImmuneFilter demotes a ball to terrain-only response. Probes are
// left alone so touches keep classifying.
func (w *World) SetImmuneFilter(body *box2d.B2Body) {
	setBallFilter(body, CategoryImmune, MaskImmune)
}

// SetActiveFilter restores full response when an immunity window
// lapses.
func (w *World) SetActiveFilter(body *box2d.B2Body) {
	setBallFilter(body, CategoryActive, MaskActive)
}

func setBallFilter(body *box2d.B2Body, category, mask uint16) {
	for f := body.GetFixtureList(); f != nil; f = f.GetNext() {
		if f.IsSensor() {
			continue
		}
		filter := f.GetFilterData()
		filter.CategoryBits = category
		filter.MaskBits = mask
		f.SetFilterData(filter)
	}
}

// ApplyImpulse kicks a body with a world-unit impulse.
func (w *World) ApplyImpulse(body *box2d.B2Body, imp mgl32.Vec2) {
	body.ApplyLinearImpulseToCenter(toMeters(imp), true)
}

// SetVelocity overrides a body's linear velocity, in world units per
// second.
func (w *World) SetVelocity(body *box2d.B2Body, vel mgl32.Vec2) {
	body.SetLinearVelocity(toMeters(vel))
}

// Destroy removes a body and all its fixtures. Never call during Step.
func (w *World) Destroy(body *box2d.B2Body) {
	w.b2.DestroyBody(body)
}
