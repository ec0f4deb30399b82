package dto

// CommentForm is the body for POST /comment. Day arrives as the raw form
// string and is parsed by the handler.
type CommentForm struct {
	Text string `form:"text"`
	Day  string `form:"day"`
}
