package i18n

// messages holds the interface texts per language.
var messages = map[string]map[string]string{
	"en": {
		// navigation
		"nav.dashboard": "Tasks",
		"nav.new_todo":  "New task",
		"nav.users":     "Users",
		"nav.roles":     "Roles",
		"nav.options":   "Options",
		"nav.logout":    "Log out",
		"nav.login":     "Log in",
		"nav.register":  "Register",
		"nav.language":  "Language",
		"nav.theme":     "Theme",
		"theme.light":   "Light",
		"theme.dark":    "Dark",

		// common
		"common.save":           "Save",
		"common.cancel":         "Cancel",
		"common.new":            "Create",
		"common.edit":           "Edit",
		"common.delete":         "Delete",
		"common.actions":        "Actions",
		"common.confirm_delete": "Delete this record?",
		"common.yes":            "Yes",
		"common.no":             "No",

		// auth
		"auth.login_title":         "Log in",
		"auth.register_title":      "Register",
		"auth.no_account":          "No account yet?",
		"auth.have_account":        "Already registered?",
		"auth.invalid_credentials": "Invalid username or password",
		"auth.registered":          "Registration successful! You can now log in.",
		"auth.username_taken":      "User with this username already exists",
		"auth.email_taken":         "User with this email already exists",
		"auth.password_too_short":  "Password must be at least {0} characters",
		"auth.required_fields":     "Please fill in all required fields",
		"auth.login_required":      "Please log in to access this page",
		"auth.access_denied":       "Access denied. Administrator rights required.",
		"auth.too_many_attempts":   "Too many login attempts. Try again later.",

		// tasks
		"todo.list_title":     "Tasks",
		"todo.new_title":      "New task",
		"todo.edit_title":     "Edit task",
		"todo.title":          "Title",
		"todo.description":    "Description",
		"todo.completed":      "Completed",
		"todo.due_date":       "Due date",
		"todo.created_at":     "Created",
		"todo.toggle":         "Toggle",
		"todo.empty":          "No tasks yet.",
		"todo.created":        "Todo created successfully!",
		"todo.updated":        "Todo updated successfully!",
		"todo.deleted":        "Todo deleted successfully!",
		"todo.not_found":      "Task not found",
		"todo.title_required": "Title is required",
		"todo.invalid_date":   "Invalid due date",

		// pagination
		"page.per_page": "Per page",
		"page.prev":     "Previous",
		"page.next":     "Next",
		"page.of":       "Page {0} of {1}",

		// users
		"user.list_title":         "Users",
		"user.new_title":          "New user",
		"user.edit_title":         "Edit user",
		"user.username":           "Username",
		"user.email":              "Email",
		"user.password":           "Password",
		"user.password_hint":      "Leave empty to keep the current password",
		"user.role":               "Role",
		"user.created_at":         "Registered",
		"user.created":            "User created successfully!",
		"user.updated":            "User updated successfully!",
		"user.deleted":            "User deleted successfully!",
		"user.not_found":          "User not found",
		"user.cannot_delete_self": "Can't delete yourself!",
		"user.last_admin":         "At least one administrator must remain",

		// roles
		"role.list_title":          "Roles",
		"role.new_title":           "New role",
		"role.edit_title":          "Edit role",
		"role.name":                "Name",
		"role.description":         "Description",
		"role.created":             "Role created successfully!",
		"role.updated":             "Role updated successfully!",
		"role.deleted":             "Role deleted successfully!",
		"role.not_found":           "Role not found",
		"role.name_required":       "Role name is required",
		"role.name_taken":          "Role with this name already exists",
		"role.cannot_delete_admin": "Can't delete admin role!",
		"role.in_use":              "Can't delete role that is assigned to users!",

		// options
		"options.title":       "Global options",
		"options.name":        "Name",
		"options.value":       "Value",
		"options.description": "Description",
		"options.empty":       "No options stored.",

		// settings descriptions
		"setting.language": "Selected interface language",
		"setting.theme":    "Selected interface theme",
		"setting.per_page": "Number of items per page",

		"error.internal":      "Something went wrong. Please try again.",
		"error.invalid_input": "Invalid input",
	},
	"ru": {
		"nav.dashboard": "Задачи",
		"nav.new_todo":  "Новая задача",
		"nav.users":     "Пользователи",
		"nav.roles":     "Роли",
		"nav.options":   "Настройки",
		"nav.logout":    "Выйти",
		"nav.login":     "Войти",
		"nav.register":  "Регистрация",
		"nav.language":  "Язык",
		"nav.theme":     "Тема",
		"theme.light":   "Светлая",
		"theme.dark":    "Тёмная",

		"common.save":           "Сохранить",
		"common.cancel":         "Отмена",
		"common.new":            "Создать",
		"common.edit":           "Изменить",
		"common.delete":         "Удалить",
		"common.actions":        "Действия",
		"common.confirm_delete": "Удалить эту запись?",
		"common.yes":            "Да",
		"common.no":             "Нет",

		"auth.login_title":         "Вход",
		"auth.register_title":      "Регистрация",
		"auth.no_account":          "Ещё нет аккаунта?",
		"auth.have_account":        "Уже зарегистрированы?",
		"auth.invalid_credentials": "Неверное имя пользователя или пароль",
		"auth.registered":          "Регистрация прошла успешно! Теперь вы можете войти.",
		"auth.username_taken":      "Пользователь с таким именем уже существует",
		"auth.email_taken":         "Пользователь с таким email уже существует",
		"auth.password_too_short":  "Пароль должен содержать не менее {0} символов",
		"auth.required_fields":     "Заполните все обязательные поля",
		"auth.login_required":      "Войдите, чтобы открыть эту страницу",
		"auth.access_denied":       "Доступ запрещён. Требуются права администратора.",
		"auth.too_many_attempts":   "Слишком много попыток входа. Повторите позже.",

		"todo.list_title":     "Задачи",
		"todo.new_title":      "Новая задача",
		"todo.edit_title":     "Редактирование задачи",
		"todo.title":          "Название",
		"todo.description":    "Описание",
		"todo.completed":      "Выполнено",
		"todo.due_date":       "Дата выполнения",
		"todo.created_at":     "Создано",
		"todo.toggle":         "Переключить",
		"todo.empty":          "Задач пока нет.",
		"todo.created":        "Задача успешно создана!",
		"todo.updated":        "Задача успешно обновлена!",
		"todo.deleted":        "Задача успешно удалена!",
		"todo.not_found":      "Задача не найдена",
		"todo.title_required": "Название обязательно",
		"todo.invalid_date":   "Неверная дата",

		"page.per_page": "На странице",
		"page.prev":     "Назад",
		"page.next":     "Вперёд",
		"page.of":       "Страница {0} из {1}",

		"user.list_title":         "Пользователи",
		"user.new_title":          "Новый пользователь",
		"user.edit_title":         "Редактирование пользователя",
		"user.username":           "Имя пользователя",
		"user.email":              "Email",
		"user.password":           "Пароль",
		"user.password_hint":      "Оставьте пустым, чтобы сохранить текущий пароль",
		"user.role":               "Роль",
		"user.created_at":         "Зарегистрирован",
		"user.created":            "Пользователь успешно создан!",
		"user.updated":            "Пользователь успешно обновлён!",
		"user.deleted":            "Пользователь успешно удалён!",
		"user.not_found":          "Пользователь не найден",
		"user.cannot_delete_self": "Нельзя удалить самого себя!",
		"user.last_admin":         "Должен остаться хотя бы один администратор",

		"role.list_title":          "Роли",
		"role.new_title":           "Новая роль",
		"role.edit_title":          "Редактирование роли",
		"role.name":                "Название",
		"role.description":         "Описание",
		"role.created":             "Роль успешно создана!",
		"role.updated":             "Роль успешно обновлена!",
		"role.deleted":             "Роль успешно удалена!",
		"role.not_found":           "Роль не найдена",
		"role.name_required":       "Название роли обязательно",
		"role.name_taken":          "Роль с таким названием уже существует",
		"role.cannot_delete_admin": "Нельзя удалить роль администратора!",
		"role.in_use":              "Нельзя удалить роль, назначенную пользователям!",

		"options.title":       "Глобальные настройки",
		"options.name":        "Название",
		"options.value":       "Значение",
		"options.description": "Описание",
		"options.empty":       "Настроек нет.",

		"setting.language": "Выбранный язык интерфейса",
		"setting.theme":    "Выбранная тема интерфейса",
		"setting.per_page": "Количество элементов на странице",

		"error.internal":      "Что-то пошло не так. Попробуйте ещё раз.",
		"error.invalid_input": "Неверные данные",
	},
}
