package visit

// HoldSweep marks a sweep as in flight until the returned func is called.
func HoldSweep(mc *MemoryCache) func() {
	mc.wg.Add(1)
	return mc.wg.Done
}
