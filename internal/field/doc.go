// Package field implements the procedural particle fields behind every
// visualizer.
//
// A [Field] owns its particle population and is driven one frame at a time:
//
//   - Seed regenerates geometry-dependent state for a viewport size
//   - Step advances every particle by one frame
//   - Draw renders the current state onto a [Surface]
//
// Implementations:
//
//   - [Starfield]: parallax drift recycled at a far depth bound
//   - [Galaxy]: spiral, elliptical and irregular structures with
//     differential rotation
//   - [Quantum]: continuously spawned short-lived vacuum fluctuations
//   - [Stellar]: interpolated transition between stellar stages
//   - [Timeline]: static overview of every stage
//
// # Example
//
//	g := field.NewGalaxy(params.DefaultGalaxy(), rand.New(rand.NewPCG(1, 2)))
//	g.Seed(640, 360)
//	for i := 0; i < 60; i++ {
//		g.Step()
//		g.Draw(surface)
//	}
//
// # Thread Safety
//
// Fields are NOT thread-safe. Each instance is owned by exactly one animator
// and touched only from its frame callback.
package field
