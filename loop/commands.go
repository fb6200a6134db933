package loop

// Commands buffers the intents delivered to a frame and the work deferred to
// the end of it. Replacing the game instance is always deferred so that no
// system sees the game change underneath it.
type Commands struct {
	intents []Intent
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Push queues an intent.
func (c *Commands) Push(intent Intent) {
	c.intents = append(c.intents, intent)
}

// Defer queues a function to run once every system has executed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// TakeIntents returns the queued intents and empties the queue.
func (c *Commands) TakeIntents() []Intent {
	intents := c.intents
	c.intents = nil
	return intents
}

// Pending returns the number of queued intents.
func (c *Commands) Pending() int {
	return len(c.intents)
}

// Flush runs the deferred functions in order and resets the buffer.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	c.defers = c.defers[:0]
}
