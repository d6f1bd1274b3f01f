package service

// SetRandFn lets external tests pin the sample picker for determinism.
func (s *InterestServiceImpl) SetRandFn(fn func(n int) int) {
	s.randFn = fn
}
