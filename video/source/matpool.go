package source

import (
	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// MatPool recycles scratch Mats between frames. A single goroutine owns the
// free list, so NewMat and ReleaseMat may be called from anywhere.
type MatPool struct {
	new   chan chan gocv.Mat
	free  chan gocv.Mat
	close chan chan bool
	stats chan chan int

	// Warn once when more Mats than this are outstanding.
	warnAt int

	allocated int
	available []gocv.Mat
}

func NewMatPool(warnAt int) *MatPool {
	p := &MatPool{
		new:    make(chan chan gocv.Mat),
		free:   make(chan gocv.Mat),
		close:  make(chan chan bool),
		stats:  make(chan chan int),
		warnAt: warnAt,
	}
	go p.loop()
	return p
}

func (p *MatPool) loop() {
	warned := false
	for {
		select {
		case c := <-p.close:
			for _, m := range p.available {
				m.Close()
				p.allocated -= 1
			}
			p.available = nil
			if p.allocated > 0 {
				log.Warnf("MatPool closed with %d Mats still in use", p.allocated)
			}
			c <- true
			return
		case r := <-p.stats:
			r <- p.allocated
		case m := <-p.free:
			p.available = append(p.available, m)
		case r := <-p.new:
			var m gocv.Mat
			if len(p.available) > 0 {
				m, p.available = p.available[0], p.available[1:]
			} else {
				m = gocv.NewMat()
				p.allocated += 1
				if p.allocated > p.warnAt && !warned {
					log.Warnf("MatPool holds %d Mats. Perhaps one isn't being released?", p.allocated)
					warned = true
				}
			}
			r <- m
		}
	}
}

func (p *MatPool) NewMat() gocv.Mat {
	r := make(chan gocv.Mat)
	p.new <- r
	return <-r
}

func (p *MatPool) ReleaseMat(m gocv.Mat) {
	p.free <- m
}

// Allocated returns how many Mats the pool has created and not yet freed.
func (p *MatPool) Allocated() int {
	r := make(chan int)
	p.stats <- r
	return <-r
}

// Close frees every Mat returned to the pool. Mats still held by callers
// must not be released afterwards.
func (p *MatPool) Close() {
	c := make(chan bool)
	p.close <- c
	<-c
}
