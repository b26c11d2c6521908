package scenario

// Server returns the server with the given id. Lookups are linear; scenarios
// are small and the model stays a plain value.
func (s *Scenario) Server(id uint32) (*Server, bool) {
	for i := range s.Servers {
		if s.Servers[i].ID == id {
			return &s.Servers[i], true
		}
	}
	return nil, false
}

// Request returns the request with the given id.
func (s *Scenario) Request(id uint32) (*Request, bool) {
	for i := range s.Requests {
		if s.Requests[i].ID == id {
			return &s.Requests[i], true
		}
	}
	return nil, false
}

// ResponseFor returns the expected response registered for a request, if any.
func (s *Scenario) ResponseFor(requestID uint32) (*ExpectedResponse, bool) {
	for i := range s.Responses {
		if s.Responses[i].RequestID == requestID {
			return &s.Responses[i], true
		}
	}
	return nil, false
}
