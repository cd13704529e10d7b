package adapter

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amishk599/jobdigest/internal/model"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) jobdigest/1.0"

// checkStatus returns a *model.HTTPError carrying a short excerpt of the body
// when resp is not 200 OK.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	var err error
	if msg := strings.TrimSpace(string(excerpt)); msg != "" {
		err = fmt.Errorf("%s", msg)
	}
	return &model.HTTPError{StatusCode: resp.StatusCode, Err: err}
}
