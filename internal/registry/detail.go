package registry

// DetailResult is the outcome of a company profile fetch: either a found detail or a
// missing one carrying the reason.
type DetailResult struct {
	detail CompanyDetail
	err    error
}

// Found wraps a successfully fetched detail.
func Found(d CompanyDetail) DetailResult {
	return DetailResult{detail: d}
}

// Missing records a failed fetch. A nil err is replaced with ErrDetailMissing.
func Missing(err error) DetailResult {
	if err == nil {
		err = ErrDetailMissing
	}
	return DetailResult{err: err}
}

// OK reports whether the detail was fetched.
func (r DetailResult) OK() bool {
	return r.err == nil
}

// Err returns the fetch failure, or nil for a found detail.
func (r DetailResult) Err() error {
	return r.err
}

// Detail returns the fetched detail, or the all-empty placeholder when missing.
func (r DetailResult) Detail() CompanyDetail {
	if r.err != nil {
		return CompanyDetail{}
	}
	return r.detail
}
