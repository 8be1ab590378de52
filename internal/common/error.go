package common

import (
	"fmt"
	"strings"

	"evedecode/internal/eve"
)

// Error represents the library error object.
// Data-dependent decode problems are reported as warnings in the output
// stream; Error is kept for API misuse, configuration and input failures.
type Error struct {
	Code    eve.Err
	Sev     eve.ErrSeverity
	Idx     eve.SampleIdx
	Message string
}

func NewError(sev eve.ErrSeverity, code eve.Err) *Error {
	return &Error{
		Code: code,
		Sev:  sev,
		Idx:  eve.BadSampleIdx,
	}
}

func NewErrorWithIdx(sev eve.ErrSeverity, code eve.Err, idx eve.SampleIdx) *Error {
	return &Error{
		Code: code,
		Sev:  sev,
		Idx:  idx,
	}
}

func NewErrorMsg(sev eve.ErrSeverity, code eve.Err, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     sev,
		Idx:     eve.BadSampleIdx,
		Message: msg,
	}
}

func NewErrorWithIdxMsg(sev eve.ErrSeverity, code eve.Err, idx eve.SampleIdx, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     sev,
		Idx:     idx,
		Message: msg,
	}
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	switch e.Sev {
	case eve.ErrSevError:
		sb.WriteString("ERROR:")
	case eve.ErrSevWarn:
		sb.WriteString("WARN :")
	case eve.ErrSevInfo:
		sb.WriteString("INFO :")
	case eve.ErrSevDebug:
		sb.WriteString("DEBUG:")
	default:
		return "LIBRARY INTERNAL ERROR: Invalid Error Object"
	}

	sb.WriteString(fmt.Sprintf("0x%04x ", e.Code))

	if desc, ok := errorCodeDesc[e.Code]; ok {
		sb.WriteString(fmt.Sprintf("(%s) [%s]; ", desc.name, desc.msg))
	} else {
		sb.WriteString("(unknown); ")
	}

	if e.Idx != eve.BadSampleIdx {
		sb.WriteString(fmt.Sprintf("SmpIdx=%d; ", e.Idx))
	}

	sb.WriteString(e.Message)
	return sb.String()
}

// DataRespStr returns a string representation for an eve.DatapathResp value.
func DataRespStr(resp eve.DatapathResp) string {
	switch resp {
	case eve.RespCont:
		return "RESP_CONT: Continue processing."
	case eve.RespWarnCont:
		return "RESP_WARN_CONT: Continue processing -> a component logged a warning."
	case eve.RespErrCont:
		return "RESP_ERR_CONT: Continue processing -> a component logged an error."
	case eve.RespFatalNotInit:
		return "RESP_FATAL_NOT_INIT: Processing Fatal Error :  component unintialised."
	case eve.RespFatalInvalidParam:
		return "RESP_FATAL_INVALID_PARAM: Processing Fatal Error :  invalid parameter in datapath call."
	case eve.RespFatalInvalidData:
		return "RESP_FATAL_INVALID_DATA: Processing Fatal Error :  invalid capture data."
	case eve.RespFatalSysErr:
		return "RESP_FATAL_SYS_ERR: Processing Fatal Error :  internal system error."
	default:
		return "Unknown RESP type."
	}
}

type errDesc struct {
	name string
	msg  string
}

var errorCodeDesc = map[eve.Err]errDesc{
	eve.OK:                    {"EVE_OK", "No Error."},
	eve.ErrFail:               {"EVE_ERR_FAIL", "General failure."},
	eve.ErrNotInit:            {"EVE_ERR_NOT_INIT", "Component not initialised."},
	eve.ErrInvalidParamVal:    {"EVE_ERR_INVALID_PARAM_VAL", "Invalid value parameter passed to component."},
	eve.ErrInvalidParamType:   {"EVE_ERR_INVALID_PARAM_TYPE", "Type mismatch on abstract interface."},
	eve.ErrFileError:          {"EVE_ERR_FILE_ERROR", "File access error"},
	eve.ErrAttachTooMany:      {"EVE_ERR_ATTACH_TOO_MANY", "Cannot attach - attach device limit reached."},
	eve.ErrAttachCompNotFound: {"EVE_ERR_ATTACH_COMP_NOT_FOUND", "Cannot detach - component not found."},
	eve.ErrCaptureParse:       {"EVE_ERR_CAPTURE_PARSE", "Capture file parse error"},
	eve.ErrUnknownFamily:      {"EVE_ERR_UNKNOWN_FAMILY", "Chip family not known to the decoder."},
	eve.ErrBadBitRange:        {"EVE_ERR_BAD_BIT_RANGE", "Bit field range outside the value width."},
	eve.ErrDataDecodeFatal:    {"EVE_ERR_DATA_DECODE_FATAL", "A decoder in the data path has returned a fatal error."},
	eve.ErrLast:               {"EVE_ERR_LAST", "No error - error code end marker"},
}
