package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/service"
)

// answerRequestFromQuery builds an answer request from GET parameters:
// q, top_k, tone, length, audience, timeframe and repeatable url.
func answerRequestFromQuery(q url.Values) (service.AnswerRequest, error) {
	req := service.AnswerRequest{
		Question: q.Get("q"),
		Style:    fusion.DefaultStyle(),
	}

	var err error
	if req.TopK, err = intParam(q, "top_k", 0); err != nil {
		return req, err
	}
	if req.Style.Length, err = intParam(q, "length", req.Style.Length); err != nil {
		return req, err
	}
	if req.Style.Timeframe, err = intParam(q, "timeframe", req.Style.Timeframe); err != nil {
		return req, err
	}
	if tone := strings.TrimSpace(q.Get("tone")); tone != "" {
		req.Style.Tone = tone
	}
	if audience := strings.TrimSpace(q.Get("audience")); audience != "" {
		req.Style.Audience = audience
	}
	req.WebURLs = q["url"]
	return req, nil
}

func intParam(q url.Values, key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Field: key, Message: "must be an integer"}
	}
	return v, nil
}
