package main

import (
	"image/color"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/scene2d/physics"
	"github.com/milk9111/scene2d/prefabs"
	"github.com/milk9111/scene2d/scene"
	"github.com/milk9111/scene2d/scene/rigidbody"
	"github.com/milk9111/scene2d/script"
)

const (
	windowWidth  = 320
	windowHeight = 240
	stepDt       = 1.0 / 60.0

	templatesDir = "prefabs/templates"
)

type Game struct {
	library *prefabs.Library
	graph   *scene.Graph
	world   *physics.World
	watcher *prefabs.Watcher

	colliders map[*rigidbody.RigidBody]physics.Collider
	thruster  *script.Runtime
}

func NewGame(gravity float64, watch bool) (*Game, error) {
	library := prefabs.NewLibrary()
	if err := library.LoadDefaults(); err != nil {
		return nil, err
	}

	g := &Game{
		library:   library,
		graph:     scene.NewGraph(),
		world:     physics.NewWorld(cp.Vector{Y: gravity}),
		colliders: make(map[*rigidbody.RigidBody]physics.Collider),
	}

	if err := g.spawn("platform"); err != nil {
		return nil, err
	}
	crate, err := g.spawnNode("crate")
	if err != nil {
		return nil, err
	}
	if err := g.spawn("ball"); err != nil {
		return nil, err
	}

	g.thruster, err = script.NewRuntime("thruster.tengo", crate)
	if err != nil {
		return nil, err
	}

	if watch {
		if _, err := os.Stat(templatesDir); err != nil {
			log.Printf("sandbox: watch disabled: %v", err)
		} else if g.watcher, err = prefabs.NewWatcher(templatesDir); err != nil {
			log.Printf("sandbox: watch disabled: %v", err)
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) spawn(template string) error {
	_, err := g.spawnNode(template)
	return err
}

func (g *Game) spawnNode(template string) (*rigidbody.RigidBody, error) {
	node, err := g.library.Instantiate(template)
	if err != nil {
		return nil, err
	}
	spec, _ := g.library.Spec(template)
	col := spec.Collider.Collider()
	g.graph.Add(node)
	g.world.Register(node, col)
	g.colliders[node] = col
	return node, nil
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.graph.Each(func(_ scene.Handle, n scene.Node) {
			if rb, ok := n.(*rigidbody.RigidBody); ok {
				rb.WakeUp()
				rb.ApplyImpulse(cp.Vector{Y: -120 * rb.Mass()})
			}
		})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.duplicateOne()
	}

	if g.thruster != nil {
		if err := g.thruster.Update(stepDt); err != nil {
			log.Printf("sandbox: thruster script: %v", err)
			g.thruster = nil
		}
	}

	g.world.Step(stepDt)
	return nil
}

// duplicateOne raw-copies the first dynamic node; the copy arrives with an
// unbound handle and must register on its own.
func (g *Game) duplicateOne() {
	var src *rigidbody.RigidBody
	g.graph.Each(func(_ scene.Handle, n scene.Node) {
		if src != nil {
			return
		}
		if rb, ok := n.(*rigidbody.RigidBody); ok && rb.BodyType() == rigidbody.Dynamic {
			src = rb
		}
	})
	if src == nil {
		return
	}
	dup := src.RawCopy().(*rigidbody.RigidBody)
	dup.Base().SetPosition(src.Base().Position().Add(cp.Vector{X: 24, Y: -24}))
	g.graph.Add(dup)
	g.world.Register(dup, g.colliders[src])
	g.colliders[dup] = g.colliders[src]
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if ev.Kind != prefabs.TemplateEvent {
				// scripts are compiled once per runtime; edits need a restart
				continue
			}
			if err := g.library.LoadFile(ev.Path); err != nil {
				log.Printf("sandbox: reload %s: %v", ev.Path, err)
				continue
			}
			log.Printf("sandbox: reloaded template %s", prefabs.TemplateNameFromPath(ev.Path))
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("sandbox: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.graph.Each(func(_ scene.Handle, n scene.Node) {
		rb, ok := n.(*rigidbody.RigidBody)
		if !ok || !rb.Base().Visibility() {
			return
		}
		col := g.colliders[rb]
		pos := rb.Base().Position()
		x := float32(pos.X - col.Width/2)
		y := float32(pos.Y - col.Height/2)

		clr := color.RGBA{R: 90, G: 170, B: 255, A: 255}
		if rb.IsSleeping() {
			clr = color.RGBA{R: 110, G: 110, B: 130, A: 255}
		}
		if rb.BodyType() != rigidbody.Dynamic {
			clr = color.RGBA{R: 90, G: 200, B: 120, A: 255}
		}
		vector.FillRect(screen, x, y, float32(col.Width), float32(col.Height), clr, false)

		// heading line to make rotation visible
		half := math.Min(col.Width, col.Height) / 2
		tip := pos.Add(cp.Vector{X: math.Cos(rb.Base().Rotation()), Y: math.Sin(rb.Base().Rotation())}.Mult(half))
		vector.StrokeLine(screen, float32(pos.X), float32(pos.Y), float32(tip.X), float32(tip.Y), 1, color.White, false)
	})

	ebitenutil.DebugPrint(screen, "space: impulse  r: duplicate")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
