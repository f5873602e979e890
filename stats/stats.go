package stats

import (
	"fmt"
	"os"
	"time"
)

type counter struct {
	changesets int64
	nodes      int64
	ways       int64
	relations  int64
	geoms      int64
	lastReport time.Time
}

// Statistics collects ingest progress over channels and reports it once
// per second while an ingestion runs.
type Statistics struct {
	changesets chan int
	nodes      chan int
	ways       chan int
	relations  chan int
	geoms      chan int
	reset      chan bool
	done       chan bool
}

func (s *Statistics) AddChangesets(n int) { s.changesets <- n }
func (s *Statistics) AddNodes(n int)      { s.nodes <- n }
func (s *Statistics) AddWays(n int)       { s.ways <- n }
func (s *Statistics) AddRelations(n int)  { s.relations <- n }
func (s *Statistics) AddGeometries(n int) { s.geoms <- n }
func (s *Statistics) Reset()              { s.reset <- true }
func (s *Statistics) Stop()               { s.done <- true }

func NewReporter() *Statistics {
	c := counter{}
	s := Statistics{
		changesets: make(chan int),
		nodes:      make(chan int),
		ways:       make(chan int),
		relations:  make(chan int),
		geoms:      make(chan int),
		reset:      make(chan bool),
		done:       make(chan bool),
	}

	go func() {
		tick := time.Tick(time.Second)
		for {
			select {
			case n := <-s.changesets:
				c.changesets += int64(n)
			case n := <-s.nodes:
				c.nodes += int64(n)
			case n := <-s.ways:
				c.ways += int64(n)
			case n := <-s.relations:
				c.relations += int64(n)
			case n := <-s.geoms:
				c.geoms += int64(n)
			case <-s.reset:
				c = counter{}
			case <-s.done:
				c.print()
				return
			case <-tick:
				c.print()
			}
		}
	}()
	return &s
}

func (c *counter) print() {
	fmt.Fprintf(os.Stderr,
		"[progress] %d changesets, %d nodes, %d ways, %d relations, %d geometries\n",
		c.changesets, c.nodes, c.ways, c.relations, c.geoms)
	c.lastReport = time.Now()
}
