package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const (
	sessionIDParam = "sessionID"

	maxJSONBodySize = 1 << 20
	maxMemory       = 32 << 20
)

type EditHandler struct {
	sessions     usecase.EditSessionsUC
	maxImageSize int64
	logger       logger.Logger
}

func NewEditHandler(sessions usecase.EditSessionsUC, maxImageSize int64, logger logger.Logger) *EditHandler {
	return &EditHandler{
		sessions:     sessions,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

// openEdit
//
//	@Summary		Открытие формы редактирования
//	@Description	Создаёт сессию редактирования по снимку товара и дожидается загрузки категорий
//	@Tags			edits
//	@Accept			json
//	@Produce		json
//	@Param			product	body		ProductSnapshotRequest	true	"Товар из списка"
//	@Success		201		{object}	EditSessionResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/edits [post]
func (h *EditHandler) openEdit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	var req ProductSnapshotRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	session, err := h.sessions.Open(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := session.Workflow.WaitReady(r.Context()); err != nil {
		h.logger.Debugf("client left before categories loaded: %v", err)
		_ = h.sessions.Cancel(session.ID)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewEditSessionResponse(session))
}

// getEdit
//
//	@Summary	Текущее состояние формы
//	@Tags		edits
//	@Produce	json
//	@Param		sessionID	path		string	true	"ID сессии"
//	@Success	200			{object}	EditViewResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/edits/{sessionID} [get]
func (h *EditHandler) getEdit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, NewEditViewResponse(session.Workflow.State().Snapshot()))
}

// patchEdit
//
//	@Summary		Изменение полей формы
//	@Description	Применяет переданные поля к черновику без проверки значений
//	@Tags			edits
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"ID сессии"
//	@Param			changes		body		PatchEditRequest	true	"Изменения"
//	@Success		200			{object}	EditViewResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse	"Форма закрыта"
//	@Router			/edits/{sessionID} [patch]
func (h *EditHandler) patchEdit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	var req PatchEditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	if err := h.applyPatch(session.Workflow.State(), &req); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewEditViewResponse(session.Workflow.State().Snapshot()))
}

func (h *EditHandler) applyPatch(state *usecase.EditFormState, req *PatchEditRequest) error {
	if req.Name != nil {
		if err := state.SetName(*req.Name); err != nil {
			return err
		}
	}

	if req.Price != nil {
		price, err := rawPriceText(*req.Price)
		if err != nil {
			return err
		}
		if err := state.SetPrice(price); err != nil {
			return err
		}
	}

	if req.CategoryID != nil {
		if err := state.SetCategory(*req.CategoryID); err != nil {
			return err
		}
	}

	return nil
}

// putImage
//
//	@Summary		Выбор нового изображения
//	@Description	Запоминает изображение до отправки формы. Допускаются jpeg и png
//	@Tags			edits
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			sessionID	path		string	true	"ID сессии"
//	@Param			image		formData	file	true	"Изображение товара"
//	@Success		200			{object}	EditViewResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		413			{object}	ErrorResponse
//	@Failure		415			{object}	ErrorResponse
//	@Router			/edits/{sessionID}/image [put]
func (h *EditHandler) putImage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+maxJSONBodySize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%s: %s", err.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	image, err := parseImage(r.MultipartForm.File["image"], h.maxImageSize)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := session.Workflow.State().SetPendingImage(image); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewEditViewResponse(session.Workflow.State().Snapshot()))
}

// deleteImage
//
//	@Summary	Отмена выбора нового изображения
//	@Tags		edits
//	@Produce	json
//	@Param		sessionID	path		string	true	"ID сессии"
//	@Success	200			{object}	EditViewResponse
//	@Router		/edits/{sessionID}/image [delete]
func (h *EditHandler) deleteImage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.Workflow.State().ClearPendingImage(); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewEditViewResponse(session.Workflow.State().Snapshot()))
}

// submitEdit
//
//	@Summary		Сохранение товара
//	@Description	Отправляет черновик в каталог одним запросом и возвращает подтверждение для оператора
//	@Tags			edits
//	@Produce		json
//	@Param			sessionID	path		string	true	"ID сессии"
//	@Success		200			{object}	SubmitResponse
//	@Failure		400			{object}	ErrorResponse	"Не заполнены обязательные поля"
//	@Failure		409			{object}	ErrorResponse	"Отправка уже выполняется"
//	@Failure		502			{object}	ErrorResponse	"Каталог отклонил изменения"
//	@Router			/edits/{sessionID}/submit [post]
func (h *EditHandler) submitEdit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	// Запрос в каталог не прерывается, если клиент отключился
	res, err := session.Workflow.Submit(context.WithoutCancel(r.Context()))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewSubmitResponse(res, session.Refreshed()))
}

// cancelEdit
//
//	@Summary	Закрытие формы без сохранения
//	@Tags		edits
//	@Param		sessionID	path	string	true	"ID сессии"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/edits/{sessionID} [delete]
func (h *EditHandler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Cancel(chi.URLParam(r, sessionIDParam)); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EditHandler) session(w http.ResponseWriter, r *http.Request) (*usecase.EditSession, bool) {
	session, err := h.sessions.Get(chi.URLParam(r, sessionIDParam))
	if err != nil {
		WriteError(w, err)
		return nil, false
	}

	return session, true
}
