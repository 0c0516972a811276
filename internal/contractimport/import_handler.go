package contractimport

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	contractimporterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport/errors"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/middleware"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const formFileField = "file"

type Handler struct {
	service        Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(service Service, maxUploadBytes int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("contractimport.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contractimport.handler")
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("contract import request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Import accepts either a multipart upload in the "file" field or a JSON body
// pointing at an uploaded object.
func (h *Handler) Import(c *gin.Context) {
	var (
		req ImportRequest
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		req, err = h.bindUpload(c)
	} else {
		req, err = h.bindReference(c)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	req.UploadedBy = c.GetString(middleware.ContextUserID)

	ctx := c.Request.Context()
	contextutil.GetLogger(ctx, h.logger).Debug("http import contract",
		zap.String("file_name", req.FileName),
		zap.String("file_reference", req.FileReference),
	)

	res, err := h.service.Import(ctx, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Partial(c, httpErr.Status, res, httpErr.Code, httpErr.Message)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) bindUpload(c *gin.Context) (ImportRequest, error) {
	header, err := c.FormFile(formFileField)
	if err != nil {
		return ImportRequest{}, apperror.RequiredField("File")
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		return ImportRequest{}, contractimporterrors.ErrFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return ImportRequest{}, apperror.InvalidField("File")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return ImportRequest{}, apperror.InvalidField("File")
	}

	requireExisting, _ := strconv.ParseBool(c.PostForm("require_existing_customer"))
	return ImportRequest{
		FileName:                header.Filename,
		Content:                 content,
		FileReference:           c.PostForm("file_reference"),
		RequireExistingCustomer: requireExisting,
	}, nil
}

func (h *Handler) bindReference(c *gin.Context) (ImportRequest, error) {
	var body ImportByReferenceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return ImportRequest{}, apperror.MapValidationError(err)
	}
	return ImportRequest{
		FileReference:           body.FileReference,
		FileName:                body.FileName,
		RequireExistingCustomer: body.RequireExistingCustomer,
	}, nil
}
