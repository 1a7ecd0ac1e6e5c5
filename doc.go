// Package lorax renders issues clustered into labeled topics on an
// [Ebitengine] canvas and moves each issue between three layouts: a resting
// cluster around the topic anchor, an expanded list, and a scattered
// off-screen position. At most one topic is expanded at a time, and rapid,
// overlapping pointer events never leave the layout half-applied.
//
// # Quick start
//
// Load a topics file, populate a registry and hand the scene to [Run]:
//
//	ds, err := lorax.LoadTopics("topics.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := lorax.NewScene()
//	reg := lorax.NewRegistry(scene, lorax.DefaultConfig())
//	anchors := lorax.GridLayout(len(ds.Topics), lorax.Vec2{X: 220, Y: 240}, lorax.Vec2{X: 380, Y: 340})
//	reg.Populate(ds, anchors, nil)
//	reg.ShowAll()
//	lorax.Run(scene, lorax.RunConfig{Title: "Topics", Width: 1000, Height: 700})
//
// # Topics
//
// A [Topic] owns its member items (usually [Issue] values), a set of
// decoys, a title and a tagline. Its state machine runs
//
//	Idle -> Entering -> Active -> Leaving -> Idle
//
// Hovering the compact region starts Entering. After the confirm delay the
// pointer must still be inside the expanded region, otherwise the topic
// leaves again; after the settle delay it becomes Active. Every enter and
// leave bumps the topic's generation, and delayed callbacks compare the
// generation they captured, so a superseded callback does nothing.
//
// Topics never find each other through globals. A [Registry] is passed to
// [NewTopic] and holds the single "currently expanded" slot; entering one
// topic force-leaves whichever topic held it.
//
// On a compact [Viewport] only the topic that last expanded accepts member
// input. Call [Registry.SyncViewport] once per frame so a resized window
// re-applies the rule. An [Intro] overlay suppresses all topic input until
// the first click or tap.
//
// # Transitions and time
//
// Every animation goes through the scene's [Scheduler], a per-target table of
// gween tweens with overwrite modes. Delayed callbacks use the scene's
// virtual clock ([Timers]). Both advance only in [Scene.Update] or
// [Scene.Tick], which makes the whole package deterministic under test:
//
//	scene.InjectHover(405, 300)
//	scene.TickFor(350*time.Millisecond, 10*time.Millisecond)
//
// # Configuration
//
// Geometry and timings live in [Config]. [LoadConfig] reads YAML on top of
// [DefaultConfig], so a file only needs the keys it changes:
//
//	radius: 80
//	timing:
//	  hover_cooldown: 3s
//
// # Debugging
//
// [Scene.SetDebugMode] logs every topic state change to stderr:
//
//	[lorax] topic 0 "energy": idle -> entering
//
// [LoadTestScript] replays JSON pointer scripts frame by frame, and
// [Scene.Snapshot] writes the next frame to a PNG.
//
// [Ebitengine]: https://ebitengine.org
package lorax
