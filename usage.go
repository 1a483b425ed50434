package chatdown

// Usage tracks token consumption for one assistant reply as reported by the
// provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Add returns the sum of u and o.
func (u Usage) Add(o Usage) Usage {
	return Usage{
		InputTokens:  u.InputTokens + o.InputTokens,
		OutputTokens: u.OutputTokens + o.OutputTokens,
	}
}
