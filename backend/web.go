// /home/krylon/go/src/github.com/blicero/lethe/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-23 18:02:11 krylon>

package backend

import (
	"net/http"
	"strconv"

	"github.com/blicero/lethe/objects"
	"github.com/blicero/lethe/objects/mode"
	"github.com/pquerna/ffjson/ffjson"
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/mode/set", d.handleModeSet)
	d.router.HandleFunc("/mode/get", d.handleModeGet)
	d.router.HandleFunc("/pending", d.handlePending)
	d.router.HandleFunc("/heal", d.handleHeal)
	d.router.HandleFunc("/deactivate", d.handleDeactivate)
	d.router.HandleFunc("/lifecycle/suspend", d.handleSuspend)
	d.router.HandleFunc("/lifecycle/resume", d.handleResume)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web interface is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) handleModeSet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		m        mode.Mode
		mstr     string
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	mstr = r.FormValue("mode")

	if m, err = mode.Parse(mstr); err != nil {
		d.log.Printf("[ERROR] Cannot parse Mode %q: %s\n",
			mstr,
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if err = d.SetMode(m); err != nil {
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = "OK"
	response.Payload = map[string]string{
		"mode": m.String(),
	}

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleModeSet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleModeGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		m        mode.Mode
		running  bool
		response = objects.Response{ID: d.getID()}
	)

	m, running = d.ActiveMode()

	response.Status = true
	response.Payload = map[string]string{
		"mode":    m.String(),
		"active":  strconv.FormatBool(running),
		"value":   fmtDuration(d.clock.Value()),
		"expired": strconv.FormatBool(d.clock.IsExpired()),
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleModeGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePending(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		cnt      int
		byMode   map[mode.Mode]int
		response = objects.Response{ID: d.getID()}
	)

	if cnt, byMode, err = d.sched.CheckPending(); err != nil {
		d.log.Printf("[ERROR] Cannot check pending requests: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Payload = map[string]string{
		"total": strconv.Itoa(cnt),
		"badge": strconv.Itoa(d.q.BadgeCount()),
	}

	for m, n := range byMode {
		response.Payload[m.String()] = strconv.Itoa(n)
	}

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handlePending(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleHeal(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		healed   bool
		response = objects.Response{ID: d.getID()}
	)

	if healed, err = d.sched.SelfHeal(); err != nil {
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Payload = map[string]string{
		"healed": strconv.FormatBool(healed),
	}

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleHeal(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		response = objects.Response{ID: d.getID()}
	)

	if err = d.sched.Deactivate(); err != nil {
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = "OK"

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleDeactivate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSuspend(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var response = objects.Response{ID: d.getID()}

	if err := d.Suspend(); err != nil {
		response.Message = err.Error()
	} else {
		response.Status = true
		response.Message = "OK"
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleSuspend(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleResume(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var response = objects.Response{ID: d.getID()}

	if err := d.Resume(); err != nil {
		response.Message = err.Error()
	} else {
		response.Status = true
		response.Message = "OK"
		response.Payload = map[string]string{
			"value": fmtDuration(d.clock.Value()),
		}
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleResume(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
