// Package compositor provides the compositor-facing side of the pacing
// pipeline: an in-process simulator that accepts frame submissions ahead of
// time, finalizes them on a fixed vsync clock, and reports capacity and
// future presentation predictions asynchronously. The real display server is
// out of scope; the simulator exists so the daemon and tests have a
// collaborator with the same asynchronous contract.
package compositor
