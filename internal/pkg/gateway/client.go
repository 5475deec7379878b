package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/airenas/speechsubmit/internal/pkg/cmdapp"
	"github.com/airenas/speechsubmit/internal/pkg/utils"
	"github.com/pkg/errors"
)

//Client comunicates with the speech gateway
type Client struct {
	httpclient *http.Client
	url        string
}

//NewClient creates a gateway client, timeout 0 means no timeout
func NewClient(urlStr string, timeout time.Duration) (*Client, error) {
	res := Client{}
	var err error
	res.url, err = utils.ValidateURL(urlStr, "gateway.url")
	if err != nil {
		return nil, err
	}
	res.httpclient = &http.Client{Timeout: timeout}
	return &res, nil
}

//Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, cr Credentials) (string, error) {
	if cr.Email == "" || cr.Password == "" {
		return "", newErrorf(ErrAuthentication, "No email or password")
	}
	bodyBytes, err := json.Marshal(cr)
	if err != nil {
		return "", newError(ErrAuthentication, errors.Wrap(err, "Can't marshal credentials"))
	}
	urlStr := utils.URLJoin(c.url, "auth", "login")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", newError(ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	cmdapp.Log.Debugf("Login: %s", utils.URLToLog(urlStr))
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return "", newError(ErrTransport, errors.Wrap(err, "Can't login"))
	}
	defer resp.Body.Close()
	if err = utils.ValidateResponse(resp); err != nil {
		return "", newError(ErrAuthentication, err)
	}
	var respData loginResponse
	if err = json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return "", newError(ErrAuthentication, errors.Wrap(err, "Can't decode response"))
	}
	if respData.AccessToken == "" {
		return "", newErrorf(ErrAuthentication, "No accessToken in response")
	}
	return respData.AccessToken, nil
}

//Submit streams the audio file to the gateway and returns the created job
func (c *Client) Submit(ctx context.Context, up UploadRequest, token string) (*JobDescriptor, error) {
	if token == "" {
		return nil, newErrorf(ErrUpload, "No access token")
	}
	if up.Lang == "" {
		up.Lang = DefaultLang
	}
	if up.Queue == "" {
		up.Queue = DefaultQueue
	}
	f, err := os.Open(up.FilePath)
	if err != nil {
		return nil, newError(ErrUpload, errors.Wrap(err, "Can't open file"))
	}
	defer f.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	var writeErr error
	written := make(chan struct{})
	go func() {
		defer close(written)
		writeErr = writeForm(writer, filepath.Base(up.FilePath), f, up)
		pw.CloseWithError(writeErr)
	}()
	// unblocks the writer if the transport stops reading early
	defer func() {
		pr.Close()
		<-written
	}()

	urlStr := utils.URLJoin(c.url, "speech")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, pr)
	if err != nil {
		return nil, newError(ErrUpload, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	cmdapp.Log.Infof("Sending %s to: %s", up.FilePath, utils.URLToLog(urlStr))
	resp, err := c.httpclient.Do(req)
	if err != nil {
		pr.Close()
		<-written
		if writeErr != nil && !errors.Is(writeErr, io.ErrClosedPipe) {
			return nil, newError(ErrUpload, writeErr)
		}
		return nil, newError(ErrTransport, errors.Wrap(err, "Can't send audio"))
	}
	defer resp.Body.Close()
	if err = utils.ValidateResponse(resp); err != nil {
		return nil, newError(ErrUpload, err)
	}
	return decodeJob(resp.Body, ErrUpload)
}

func writeForm(writer *multipart.Writer, name string, file io.Reader, up UploadRequest) error {
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return errors.Wrap(err, "Can't add file to request")
	}
	if _, err = io.Copy(part, file); err != nil {
		return errors.Wrap(err, "Can't add file to request")
	}
	if err = writer.WriteField("lang", up.Lang); err != nil {
		return errors.Wrap(err, "Can't add lang to request")
	}
	if err = writer.WriteField("queue", up.Queue); err != nil {
		return errors.Wrap(err, "Can't add queue to request")
	}
	return writer.Close()
}

//Status gets the current job state from the gateway
func (c *Client) Status(ctx context.Context, ID, token string) (*JobDescriptor, error) {
	urlStr, err := c.jobURL(ID)
	if err != nil {
		return nil, err
	}
	resp, err := c.get(ctx, urlStr, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeJob(resp.Body, ErrRequest)
}

//ResultURL gets the download link of the job's result archive
func (c *Client) ResultURL(ctx context.Context, ID, token string) (string, error) {
	urlStr, err := c.jobURL(ID)
	if err != nil {
		return "", err
	}
	resp, err := c.get(ctx, urlStr+"/result", token)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var res resultResponse
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", newError(ErrRequest, errors.Wrap(err, "Can't decode response"))
	}
	if res.URL == "" {
		return "", newErrorf(ErrRequest, "No url in response")
	}
	return res.URL, nil
}

//Download copies the content of link into w
func (c *Client) Download(ctx context.Context, link string, w io.Writer) (int64, error) {
	resp, err := c.get(ctx, link, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, newError(ErrTransport, errors.Wrap(err, "Can't read result"))
	}
	return n, nil
}

// jobURL keeps the id as one escaped path segment under /speech
func (c *Client) jobURL(ID string) (string, error) {
	if ID == "" || ID == "." || ID == ".." {
		return "", newErrorf(ErrRequest, "Wrong job ID '%s'", ID)
	}
	return utils.URLJoin(c.url, "speech") + "/" + url.PathEscape(ID), nil
}

func decodeJob(body io.Reader, kind error) (*JobDescriptor, error) {
	var res jobResponse
	if err := json.NewDecoder(body).Decode(&res); err != nil {
		return nil, newError(kind, errors.Wrap(err, "Can't decode response"))
	}
	if res.StatusCode != 0 {
		return nil, newErrorf(kind, "Gateway returned code %d: %s%s", res.StatusCode, string(res.Message), errorHint(res.StatusCode))
	}
	if res.ID == "" {
		return nil, newErrorf(kind, "No _id in response")
	}
	return &res.JobDescriptor, nil
}

func errorHint(code int) string {
	switch code {
	case http.StatusNotFound:
		return ". Please check your token"
	case http.StatusForbidden:
		return ". Please check your queue"
	}
	return ""
}

func (c *Client) get(ctx context.Context, urlStr, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, newError(ErrRequest, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	cmdapp.Log.Debugf("Get: %s", utils.URLToLog(urlStr))
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, newError(ErrTransport, errors.Wrap(err, "Can't get "+utils.URLToLog(urlStr)))
	}
	if err = utils.ValidateResponse(resp); err != nil {
		resp.Body.Close()
		return nil, newError(ErrRequest, err)
	}
	return resp, nil
}
