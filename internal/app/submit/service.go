package submit

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/airenas/speechsubmit/internal/pkg/cmdapp"
	"github.com/airenas/speechsubmit/internal/pkg/gateway"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type (
	//Authenticator gets an access token for credentials
	Authenticator interface {
		Login(ctx context.Context, cr gateway.Credentials) (string, error)
	}

	//JobSubmitter sends audio for transcription
	JobSubmitter interface {
		Submit(ctx context.Context, up gateway.UploadRequest, token string) (*gateway.JobDescriptor, error)
	}

	//StatusProvider returns the current job state
	StatusProvider interface {
		Status(ctx context.Context, ID, token string) (*gateway.JobDescriptor, error)
	}

	//ResultProvider locates and downloads job results
	ResultProvider interface {
		ResultURL(ctx context.Context, ID, token string) (string, error)
		Download(ctx context.Context, link string, w io.Writer) (int64, error)
	}

	//ServiceData keeps the collaborators of one run
	ServiceData struct {
		Auth           Authenticator
		Submitter      JobSubmitter
		StatusProvider StatusProvider
		ResultProvider ResultProvider
		Printer        Printer
		Out            io.Writer
	}
)

func newServiceData(cfg *Config, out io.Writer) (*ServiceData, error) {
	gw, err := gateway.NewClient(cfg.GatewayURL, cfg.Timeout)
	if err != nil {
		return nil, errors.Wrap(err, "Can't init gateway client")
	}
	pr, err := newPrinter(cfg.Output)
	if err != nil {
		return nil, err
	}
	return &ServiceData{Auth: gw, Submitter: gw, StatusProvider: gw, ResultProvider: gw, Printer: pr, Out: out}, nil
}

//Run logs in, submits the audio file and prints the created job.
//A failed login stops the run before anything is uploaded
func Run(ctx context.Context, cfg *Config, data *ServiceData) (*gateway.JobDescriptor, error) {
	log := newRunLog().WithField("file", cfg.Upload.FilePath)
	token, err := login(ctx, log, cfg, data)
	if err != nil {
		return nil, err
	}
	log.Infof("Submitting to queue '%s', lang '%s'", cfg.Upload.Queue, cfg.Upload.Lang)
	job, err := data.Submitter.Submit(ctx, cfg.Upload, token)
	if err != nil {
		log.WithError(err).Error("Error when submitting job")
		return nil, errors.Wrap(err, "Can't submit job")
	}
	log.WithField("id", job.ID).Infof("Job %s", job.Status)
	return job, printResult(log, data, job)
}

//RunStatus prints the current state of the job
func RunStatus(ctx context.Context, cfg *Config, ID string, data *ServiceData) (*gateway.JobDescriptor, error) {
	log := newRunLog().WithField("id", ID)
	token, err := login(ctx, log, cfg, data)
	if err != nil {
		return nil, err
	}
	job, err := data.StatusProvider.Status(ctx, ID, token)
	if err != nil {
		log.WithError(err).Error("Error when getting status")
		return nil, errors.Wrap(err, "Can't get status")
	}
	log.Infof("Current status: %s", job.Status)
	return job, printResult(log, data, job)
}

//RunResult downloads the job's result archive into the file
func RunResult(ctx context.Context, cfg *Config, ID, fileName string, data *ServiceData) (int64, error) {
	log := newRunLog().WithField("id", ID)
	token, err := login(ctx, log, cfg, data)
	if err != nil {
		return 0, err
	}
	link, err := data.ResultProvider.ResultURL(ctx, ID, token)
	if err != nil {
		log.WithError(err).Error("Error when getting result link")
		return 0, errors.Wrap(err, "Can't get result link")
	}
	log.Infof("Download link: %s", link)
	n, err := saveResult(ctx, link, fileName, data.ResultProvider)
	if err != nil {
		log.WithError(err).Error("Error when downloading result")
		return n, err
	}
	log.Infof("File %s saved. %d bytes", fileName, n)
	return n, nil
}

// saveResult downloads into a temp file and renames it, so an existing file is kept on failure
func saveResult(ctx context.Context, link, fileName string, rp ResultProvider) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(fileName), "."+filepath.Base(fileName)+".*")
	if err != nil {
		return 0, errors.Wrap(err, "Can't create file in "+filepath.Dir(fileName))
	}
	cmdapp.LogIf(f.Chmod(0644))
	n, err := rp.Download(ctx, link, f)
	cErr := f.Close()
	if err == nil && cErr != nil {
		err = errors.Wrap(cErr, "Can't close "+f.Name())
	}
	if err == nil {
		err = errors.Wrap(os.Rename(f.Name(), fileName), "Can't rename to "+fileName)
	}
	if err != nil {
		cmdapp.LogIf(os.Remove(f.Name()))
		return n, errors.Wrap(err, "Can't download result")
	}
	return n, nil
}

func login(ctx context.Context, log *logrus.Entry, cfg *Config, data *ServiceData) (string, error) {
	token, err := data.Auth.Login(ctx, cfg.Credentials)
	if err != nil {
		log.WithError(err).Error("Error when logging in")
		return "", errors.Wrap(err, "Can't login")
	}
	log.Debug("Logged in")
	return token, nil
}

func printResult(log *logrus.Entry, data *ServiceData, v interface{}) error {
	if err := data.Printer.Print(data.Out, v); err != nil {
		log.WithError(err).Error("Error when printing response")
		return err
	}
	return nil
}

func newRunLog() *logrus.Entry {
	return cmdapp.Log.WithField("run", uuid.NewString())
}
