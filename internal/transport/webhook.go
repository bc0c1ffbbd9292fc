package transport

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/rpggio/sitecord/internal/domain/account"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/tidwall/gjson"
)

const maxBodyBytes = 64 << 10

var errInvalidJSON = errors.New("invalid JSON body")

func (s *Server) handleSMS(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInbound(w, r)
	if err != nil {
		s.logger.Error("decode sms webhook", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	in.ReceivedAt = s.now().UTC()

	out, err := s.intake.Handle(r.Context(), in)
	if err != nil {
		s.logger.Error("handle sms", "from", in.From, "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("sms processed",
		"from", in.From,
		"action", out.Action,
		"project_id", out.ProjectID,
		"task_id", out.TaskID)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUserCreated(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || !gjson.ValidBytes(body) {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	uid := gjson.GetBytes(body, "uid").String()
	if err := s.accounts.OnUserCreated(r.Context(), uid); err != nil {
		if errors.Is(err, account.ErrInvalidInput) {
			http.Error(w, "missing uid", http.StatusBadRequest)
			return
		}
		s.logger.Error("assign role", "uid", uid, "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeInbound reads From and Body from a form post or a JSON object.
func decodeInbound(w http.ResponseWriter, r *http.Request) (message.Inbound, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return message.Inbound{}, fmt.Errorf("read body: %w", err)
		}
		if !gjson.ValidBytes(body) {
			return message.Inbound{}, errInvalidJSON
		}
		fields := gjson.GetManyBytes(body, "From", "Body")
		return message.Inbound{From: fields[0].String(), Body: fields[1].String()}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return message.Inbound{}, fmt.Errorf("parse form: %w", err)
	}
	return message.Inbound{From: r.PostFormValue("From"), Body: r.PostFormValue("Body")}, nil
}
