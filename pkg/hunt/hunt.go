package hunt

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

const huntPath = "/v0.2/hunt"

// maxDocuments caps how many matches a single response may carry.
const maxDocuments = 100

type huntRequest struct {
	Query     string `json:"query"`
	NextToken string `json:"nextToken,omitempty"`
}

// Dataset describes the provenance of a matched document.
type Dataset struct {
	Authorities              []string `json:"authorities"`
	Section                  string   `json:"section"`
	ExactListName            string   `json:"exactListName"`
	ImplementingOrganization string   `json:"implementingOrganization"`
}

// TabularData carries optional structured fields attached to a document.
type TabularData struct {
	Headers []string   `json:"headers"`
	Fields  [][]string `json:"fields"`
}

// Document is one matched entity record.
type Document struct {
	DatasetID   string       `json:"datasetId"`
	ID          string       `json:"id"`
	Names       []string     `json:"names"`
	PrimaryName string       `json:"primaryName"`
	RawData     string       `json:"rawData"`
	Values      []string     `json:"values"`
	Dataset     Dataset      `json:"dataset"`
	TabularData *TabularData `json:"tabularData,omitempty"`
}

// Result is the upstream search payload: the echoed query, an optional
// pagination token and up to 100 matched documents.
type Result struct {
	Query         string     `json:"query"`
	NextToken     string     `json:"nextToken,omitempty"`
	HuntDocuments []Document `json:"huntDocuments"`
}

// Hunt runs a single search. The pagination token, when supplied, is sent
// verbatim in the request body. Retries are entirely Do's responsibility;
// this only translates the outcome.
func (c *Client) Hunt(ctx context.Context, query, nextToken string) (*Result, error) {
	data, err := c.Do(ctx, http.MethodPost, huntPath, huntRequest{Query: query, NextToken: nextToken})
	if err != nil {
		return nil, translate(err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "decode hunt response")
	}
	if len(result.HuntDocuments) > maxDocuments {
		result.HuntDocuments = result.HuntDocuments[:maxDocuments]
	}
	return &result, nil
}

// translate maps known upstream status codes onto the errors the tools
// report; anything else is wrapped with the underlying message.
func translate(err error) error {
	var se *StatusError
	if !errors.As(err, &se) {
		return errors.Wrap(err, "hunt request failed")
	}
	switch se.Code {
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusBadRequest:
		if se.Body != "" {
			return errors.Errorf("bad request: %s", se.Body)
		}
		return errors.New("bad request")
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return err
}
