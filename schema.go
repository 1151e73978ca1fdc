// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package kapetriage

// logEventSchema validates entries of the structured run log.
const logEventSchema = `{
  "$schema": "https://json-schema.org/draft/2019-09/schema#",
  "$id": "kapetriage:logevent",
  "title": "logevent",
  "type": "object",
  "required": ["event", "time"],
  "properties": {
    "event": {"enum": ["start", "end", "error"]},
    "time": {"type": "string"},
    "kape": {"type": "string"},
    "system": {"type": "string"},
    "outputPath": {"type": "string"},
    "usbRoot": {"type": "string"},
    "taskName": {"type": "string"},
    "chainOfCustody": {
      "type": "object",
      "required": ["CaseId", "IncidentId", "OperatorName", "OperatorId", "AuthorisationRef", "EvidenceDeviceId", "Hostname", "ScriptVersion"],
      "properties": {
        "CaseId": {"type": "string"},
        "IncidentId": {"type": "string"},
        "OperatorName": {"type": "string"},
        "OperatorId": {"type": "string"},
        "AuthorisationRef": {"type": "string"},
        "EvidenceDeviceId": {"type": "string"},
        "Hostname": {"type": "string"},
        "Notes": {"type": "string"},
        "AcquisitionStartUtc": {"type": "string"},
        "AcquisitionEndUtc": {"type": "string"},
        "ScriptVersion": {"type": "string"}
      }
    },
    "exitCode": {"type": "integer"},
    "duration": {"type": "string"},
    "message": {"type": "string"},
    "stack": {"type": "string"},
    "caseId": {"type": "string"},
    "incidentId": {"type": "string"}
  },
  "allOf": [
    {
      "if": {"properties": {"event": {"const": "start"}}},
      "then": {"required": ["kape", "outputPath", "taskName", "chainOfCustody"]}
    },
    {
      "if": {"properties": {"event": {"const": "end"}}},
      "then": {"required": ["exitCode", "duration", "chainOfCustody"]}
    },
    {
      "if": {"properties": {"event": {"const": "error"}}},
      "then": {"required": ["message"]}
    }
  ]
}`
