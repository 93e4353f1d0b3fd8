package encode

type EncodeOption func(*encState)

// EncodeDates annotates every dated node with an [&&NHX:date=x] block.
func EncodeDates(v bool) EncodeOption {
	return func(es *encState) { es.dates = v }
}

// EncodePrecision rounds edge lengths and dates to p decimals. The
// default, -1, writes the shortest exact representation.
func EncodePrecision(p int) EncodeOption {
	return func(es *encState) { es.prec = p }
}
