// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-app-usercheck checks the user rosters in a set of Excel workbooks stored in Google Drive against
a reference list of running users.

uhppoted-app-usercheck is a one-shot command line tool. Given a Google Drive folder link and a reference list (a CSV
file, or a Google Sheets range, with 'algo', 'server' and 'userId' columns) it downloads every workbook in the 'summary'
subfolder and reports:

  - workbooks without a 'Users' sheet or without a 'UserID' column
  - 'Users' sheets with more than one ALGO or SERVER value
  - users missing from, or extra in, the 'User ID' column of every other worksheet
  - users missing from, or extra in, the reference list for the workbook ALGO

uhppoted-app-usercheck supports the following commands:

  - authorise, to authorise application access to Google Drive and Google Sheets
  - check, to check the workbooks in a Google Drive folder against a reference list
  - version, to display the application version
*/
package usercheck
