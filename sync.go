package glref

// Rendering is synchronous, so every fence is signaled when it is created.

// FenceSync inserts a fence and returns its name.
func (c *ReferenceContext) FenceSync(condition, flags Enum) uint32 {
	c.enter("FenceSync")
	if condition != SyncGPUCommandsComplete {
		c.setError(InvalidEnum)
		return 0
	}
	if flags != 0 {
		c.setError(InvalidValue)
		return 0
	}
	name := c.nextSync
	c.nextSync++
	c.syncs[name] = true
	return name
}

// ClientWaitSync waits for a fence. Fences are always already signaled.
func (c *ReferenceContext) ClientWaitSync(sync uint32, flags Enum, timeout uint64) Enum {
	c.enter("ClientWaitSync")
	if _, ok := c.syncs[sync]; !ok {
		c.setError(InvalidValue)
		return WaitFailed
	}
	if flags&^SyncFlushCommandsBit != 0 {
		c.setError(InvalidValue)
		return WaitFailed
	}
	return AlreadySignaled
}

// DeleteSync deletes a fence. Zero is ignored.
func (c *ReferenceContext) DeleteSync(sync uint32) {
	c.enter("DeleteSync")
	if sync == 0 {
		return
	}
	if _, ok := c.syncs[sync]; !ok {
		c.setError(InvalidValue)
		return
	}
	delete(c.syncs, sync)
}

// IsSync reports whether sync names a fence.
func (c *ReferenceContext) IsSync(sync uint32) bool {
	c.enter("IsSync")
	_, ok := c.syncs[sync]
	return ok
}
