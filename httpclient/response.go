package httpclient

type Response struct {
	StatusCode int
	Headers    map[string]string
	RequestID  string
	Body       []byte
}
